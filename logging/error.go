package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// stackTracer is implemented by errors of github.com/pkg/errors that carry a stack trace.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// errNoStackTrace hides the fmt.Formatter of the wrapped error, so zap does not add an errorVerbose field.
type errNoStackTrace struct {
	e error
}

func (e errNoStackTrace) Error() string {
	return e.e.Error()
}

// Error returns a zap.Field for logging the provided error.
// Stack traces attached by github.com/pkg/errors are not logged,
// since validation errors point at the configuration document, not at the code.
func Error(e error) zap.Field {
	if _, ok := e.(stackTracer); ok {
		return zap.Error(errNoStackTrace{e})
	}

	return zap.Error(e)
}
