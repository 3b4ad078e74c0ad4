package normalize

import "fmt"

// ValidationError reports input that cannot be canonicalized. The message is
// written for an automated caller: it names the offending value and the
// accepted values, so the caller can correct the request without a second
// lookup.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
