package selector

import "fmt"

// StateError reports that the clone set collaborator could not be reached
// or mutated. It signals a broken collaborator, not bad input data:
// selection is aborted immediately and never retried.
type StateError struct {
	// Op names the registration operation that failed.
	Op string

	// Entity names the type or member being registered, when known.
	Entity string

	// Message describes failures with no underlying error.
	Message string

	// Err is the collaborator's error, if any.
	Err error
}

// Error implements the error interface.
func (e *StateError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Entity != "" {
		return fmt.Sprintf("clone set state: %s %s: %s", e.Op, e.Entity, msg)
	}
	return fmt.Sprintf("clone set state: %s: %s", e.Op, msg)
}

// Unwrap returns the collaborator's error.
func (e *StateError) Unwrap() error {
	return e.Err
}
