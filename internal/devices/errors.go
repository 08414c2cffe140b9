package devices

import "fmt"

// ValidationError is returned when a client supplied control value is missing or out of range
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Value) > 0 {
		return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}
