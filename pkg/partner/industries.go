package partner

const (
	IndustryECommerce   = "eCommerce"
	IndustryRetail      = "Retail"
	IndustryHealthcare  = "Healthcare"
	IndustryElectronics = "Electronics"
	IndustryFood        = "Food"
	IndustryIndustrial  = "Industrial"
)

var allIndustries = []string{
	IndustryECommerce,
	IndustryRetail,
	IndustryHealthcare,
	IndustryElectronics,
	IndustryFood,
	IndustryIndustrial,
}

// Catalog returns the fixed industry list in presentation order.
func Catalog() []string {
	return append([]string(nil), allIndustries...)
}

// IsIndustry reports whether name belongs to the catalog.
func IsIndustry(name string) bool {
	for _, industry := range allIndustries {
		if industry == name {
			return true
		}
	}
	return false
}

// Selection is an insertion-ordered set of industry names. The zero value is
// an empty selection.
type Selection struct {
	names []string
}

// Toggle removes name when present and appends it otherwise. It reports
// whether name is selected afterwards. Re-selecting a name always moves it to
// the end.
func (s *Selection) Toggle(name string) bool {
	for i, existing := range s.names {
		if existing == name {
			s.names = append(s.names[:i:i], s.names[i+1:]...)
			return false
		}
	}
	s.names = append(s.names, name)
	return true
}

// Contains reports whether name is selected.
func (s *Selection) Contains(name string) bool {
	for _, existing := range s.names {
		if existing == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the selected names in insertion order. The result
// is never nil so it encodes as a JSON array.
func (s *Selection) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of selected names.
func (s *Selection) Len() int {
	return len(s.names)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.names = nil
}
