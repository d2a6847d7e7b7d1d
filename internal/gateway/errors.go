package gateway

import "fmt"

// Error is the single failure kind of the Gateway: the bridge call failed.
// Its message is exactly the cause's message.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return "bridge call failed"
	}
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DispatchError reports a named command that could not be routed to an
// operation. No bridge call has happened when one is returned.
type DispatchError struct {
	Command string
	Unknown bool
	Err     error
}

func (e *DispatchError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("unknown command: %s", e.Command)
	}
	return fmt.Sprintf("invalid payload for %s: %v", e.Command, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
