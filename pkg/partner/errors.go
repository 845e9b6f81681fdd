package partner

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownField is returned for field names outside the fixed set.
	ErrUnknownField = errors.New("partner: unknown field")
	// ErrUnknownIndustry is returned for names outside the industry catalog.
	ErrUnknownIndustry = errors.New("partner: unknown industry")
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission has not resolved yet. No request is sent.
	ErrSubmitInFlight = errors.New("partner: submission already in flight")
	// ErrNoSubmitter is returned when the controller has nowhere to send a
	// valid proposal.
	ErrNoSubmitter = errors.New("partner: submitter is not configured")
)

// Requirement names one condition of the submit gate.
type Requirement string

const (
	RequireName     Requirement = "Name"
	RequireEmail    Requirement = "Email"
	RequireCompany  Requirement = "Company"
	RequireIndustry Requirement = "Industry"
)

// ValidationError lists the unmet requirements of a rejected submission.
type ValidationError struct {
	Missing []Requirement
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, req := range e.Missing {
		parts[i] = string(req)
	}
	return "partner: missing required: " + strings.Join(parts, ", ")
}
