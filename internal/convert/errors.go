package convert

import "fmt"

// MappingError reports a required source attribute that is absent from the
// guest configuration.
type MappingError struct {
	Field string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("source config is missing required attribute %q", e.Field)
}
