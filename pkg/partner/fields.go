package partner

import "fmt"

// FieldName identifies one of the fixed scalar inputs of the proposal form.
type FieldName string

const (
	FieldContactName    FieldName = "contactName"
	FieldContactNumber  FieldName = "contactNumber"
	FieldEmail          FieldName = "email"
	FieldCompanyName    FieldName = "companyName"
	FieldEstimatedUnits FieldName = "estimatedUnits"
	FieldComments       FieldName = "comments"
)

// InputKind hints how a front end should collect a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputEmail    InputKind = "email"
	InputTel      InputKind = "tel"
	InputNumber   InputKind = "number"
	InputTextArea InputKind = "textarea"
)

// FieldSpec describes a field for presentation. Required mirrors the submit
// gate; front ends use it to mark inputs, not to enforce anything.
type FieldSpec struct {
	Name        FieldName
	Label       string
	Placeholder string
	Kind        InputKind
	Required    bool
}

// fieldSpecs is kept in display order.
var fieldSpecs = []FieldSpec{
	{Name: FieldContactName, Label: "Contact Name", Placeholder: "Contact Name", Kind: InputText, Required: true},
	{Name: FieldEmail, Label: "Email Address", Placeholder: "Email Address", Kind: InputEmail, Required: true},
	{Name: FieldContactNumber, Label: "Contact Number", Placeholder: "Contact Number", Kind: InputTel},
	{Name: FieldCompanyName, Label: "Company Name", Placeholder: "Company Name", Kind: InputText, Required: true},
	{Name: FieldEstimatedUnits, Label: "Estimated Units Per Month", Placeholder: "e.g., 2000", Kind: InputNumber},
	{Name: FieldComments, Label: "Comments", Placeholder: "Tell us more about your business needs or partnership ideas...", Kind: InputTextArea},
}

// FieldSpecs returns the field descriptions in display order.
func FieldSpecs() []FieldSpec {
	return append([]FieldSpec(nil), fieldSpecs...)
}

// LookupField returns the description for name.
func LookupField(name FieldName) (FieldSpec, bool) {
	for _, spec := range fieldSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// ParseFieldName converts raw input (for example a DOM id or a config key)
// into a FieldName.
func ParseFieldName(raw string) (FieldName, error) {
	name := FieldName(raw)
	if _, ok := LookupField(name); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, raw)
	}
	return name, nil
}

// Fields maps every FieldName to its current value. The empty string means
// unset; a key is never missing from a map produced by this package.
type Fields map[FieldName]string

// NewFields returns the all-empty field map.
func NewFields() Fields {
	out := make(Fields, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		out[spec.Name] = ""
	}
	return out
}

// Get returns the value for name, or "" when unset.
func (f Fields) Get(name FieldName) string {
	return f[name]
}

// Clone copies the map, filling in any missing keys.
func (f Fields) Clone() Fields {
	out := NewFields()
	for name, value := range f {
		if _, ok := out[name]; ok {
			out[name] = value
		}
	}
	return out
}

// Empty reports whether every field is unset.
func (f Fields) Empty() bool {
	for _, value := range f {
		if value != "" {
			return false
		}
	}
	return true
}
