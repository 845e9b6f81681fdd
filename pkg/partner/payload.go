package partner

import "context"

// Payload is the request body sent to the partnership endpoint. It is built
// fresh for every submission and never stored.
type Payload struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	CompanyName    string   `json:"companyName"`
	Industries     []string `json:"industries"`
	EstimatedUnits string   `json:"estimatedUnits"`
	Comments       string   `json:"comments"`
}

// BuildPayload maps the field map and the ordered industry list onto the wire
// names the endpoint expects.
func BuildPayload(fields Fields, industries []string) Payload {
	list := make([]string, len(industries))
	copy(list, industries)
	return Payload{
		Name:           fields.Get(FieldContactName),
		Email:          fields.Get(FieldEmail),
		Phone:          fields.Get(FieldContactNumber),
		CompanyName:    fields.Get(FieldCompanyName),
		Industries:     list,
		EstimatedUnits: fields.Get(FieldEstimatedUnits),
		Comments:       fields.Get(FieldComments),
	}
}

// Submitter delivers a payload to the partnership endpoint. A nil error means
// the endpoint acknowledged the proposal.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload Payload) error

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, payload Payload) error {
	return f(ctx, payload)
}

// WireIndustries is the payload key that carries the industry list.
const WireIndustries = "industries"

var wireNames = map[string]FieldName{
	"name":           FieldContactName,
	"email":          FieldEmail,
	"phone":          FieldContactNumber,
	"companyName":    FieldCompanyName,
	"estimatedUnits": FieldEstimatedUnits,
	"comments":       FieldComments,
}

// FieldForWireName maps a payload key back to the form field it came from.
// The industry list has no FieldName and reports false.
func FieldForWireName(wire string) (FieldName, bool) {
	name, ok := wireNames[wire]
	return name, ok
}
