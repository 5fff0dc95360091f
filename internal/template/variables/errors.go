package variables

import "fmt"

// Error is returned when variable merge or evaluation fails.
type Error struct {
	Message string
	Name    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("variable error for '%s': %s (caused by: %v)", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("variable error for '%s': %s", e.Name, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
