package render

import (
	"errors"
	"strings"
)

// ErrNegativeUnits is reported by front ends that refuse a minus sign in the
// estimated units input. The controller itself stores any string.
var ErrNegativeUnits = errors.New("render: estimated units cannot be negative")

// UnitsKeyAllowed reports whether a keystroke may be typed into the
// estimated units input.
func UnitsKeyAllowed(r rune) bool {
	return r != '-'
}

// ValidateUnitsInput checks a whole value collected by a line prompt.
func ValidateUnitsInput(value string) error {
	if strings.ContainsRune(value, '-') {
		return ErrNegativeUnits
	}
	return nil
}
