package timeofday

import "errors"

// ErrFormat matches every FormatError through errors.Is.
var ErrFormat = errors.New("invalid time format")

// FormatError reports user input that does not fit the hh:mm pattern
// or an anchor that is not a usable timestamp.
type FormatError struct {
	Input   string
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErr(input, message string) error {
	return &FormatError{Input: input, Message: message}
}
