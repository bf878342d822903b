package resp

import "errors"

var (
	// ErrBadConfig marks a Responder misconfiguration, such as a missing template.
	ErrBadConfig = errors.New("misconfigured")

	// ErrDone marks a request context cancelled before the response was written.
	ErrDone = errors.New("request done")

	// ErrInvalid marks malformed data passed to a Fn.
	ErrInvalid = errors.New("invalid")

	// ErrMissingData marks data a Fn requires but was not supplied.
	ErrMissingData = errors.New("missing data")

	// ErrNotFound marks a value absent from the request context.
	ErrNotFound = errors.New("not found")
)
