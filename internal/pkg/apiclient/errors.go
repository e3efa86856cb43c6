package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/timeofday"
)

var (
	ErrNotFoundFallbackExhausted = errors.New("endpoint not found on any known route")
	ErrAuthExpired               = errors.New("session expired, please log in again")
	ErrValidationFailed          = errors.New("request rejected by the server")
	ErrTransientLoad             = errors.New("failed to load data")
)

// errNotFound marks a 404 so the fallback walker can try the next route.
var errNotFound = errors.New("not found")

// Error is a failed API call. Kind is one of the package sentinels, or nil
// for a non-GET failure that fits none of them.
type Error struct {
	Kind    error
	Method  string
	Path    string
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, msg)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

func (e *Error) Unwrap() error { return e.Kind }

// Message renders any client error as a single line for the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var fe *timeofday.FormatError
	if errors.As(err, &fe) {
		return fe.Error()
	}

	var apiErr *Error
	hasAPIErr := errors.As(err, &apiErr)

	switch {
	case errors.Is(err, ErrAuthExpired):
		return ErrAuthExpired.Error()
	case errors.Is(err, ErrNotFoundFallbackExhausted):
		return "this action is not available on the server"
	case errors.Is(err, ErrValidationFailed):
		if hasAPIErr {
			return describe(apiErr)
		}
		return ErrValidationFailed.Error()
	case errors.Is(err, ErrTransientLoad):
		if hasAPIErr && apiErr.Message != "" {
			return ErrTransientLoad.Error() + ": " + apiErr.Message
		}
		return ErrTransientLoad.Error()
	case hasAPIErr:
		return describe(apiErr)
	}
	return err.Error()
}

// describe joins the server message with field details in a stable order.
func describe(e *Error) string {
	msg := e.Message
	if msg == "" {
		msg = ErrValidationFailed.Error()
	}
	if len(e.Fields) == 0 {
		return msg
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return msg + " (" + strings.Join(parts, "; ") + ")"
}
