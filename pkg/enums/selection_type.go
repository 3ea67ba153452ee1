package enums

import "fmt"

// SelectionType controls how many options a customer may pick from a group.
type SelectionType string

const (
	SelectionTypeSingle   SelectionType = "single"
	SelectionTypeMultiple SelectionType = "multiple"
)

var validSelectionTypes = []SelectionType{
	SelectionTypeSingle,
	SelectionTypeMultiple,
}

// String implements fmt.Stringer.
func (s SelectionType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SelectionType.
func (s SelectionType) IsValid() bool {
	for _, candidate := range validSelectionTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSelectionType converts raw input into a SelectionType.
func ParseSelectionType(value string) (SelectionType, error) {
	for _, candidate := range validSelectionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid selection type %q", value)
}
