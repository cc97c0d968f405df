package analysis

import "fmt"

// LogicalError is a well-formed response whose "error" field reports that the
// analysis failed. Message is shown to the user verbatim.
type LogicalError struct {
	Message string
}

func (e *LogicalError) Error() string {
	return e.Message
}

// MalformedError is a response body that does not match the analysis contract.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed analysis response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed analysis response: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(reason string, err error) error {
	return &MalformedError{Reason: reason, Err: err}
}
