package registry

import (
	"errors"
	"fmt"
)

// Kind classifies a lookup failure. Handlers map kinds to HTTP status
// classes; stage logic never inspects message strings.
type Kind string

const (
	// KindConfig means the registry credential is absent. No outbound call
	// was issued.
	KindConfig Kind = "config"
	// KindNetwork covers connection failures and non-success transport
	// statuses.
	KindNetwork Kind = "network"
	// KindDecode means the provider body was not JSON, or JSON of the wrong
	// shape.
	KindDecode Kind = "decode"
	// KindProvider means the provider answered with a non-OK error_code.
	KindProvider Kind = "provider"
	// KindNotFound means the provider answered OK but returned no record.
	KindNotFound Kind = "not_found"
)

// Error represents a registry lookup failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry lookup error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("registry lookup error (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind reports whether err is a registry Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}
