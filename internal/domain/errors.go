package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// InvalidQueryError represents a malformed sort mode, period or page value.
// It is a caller error and maps to a 4xx response.
type InvalidQueryError struct {
	Reason string
}

func (e InvalidQueryError) Error() string {
	if e.Reason == "" {
		return "invalid query"
	}
	return fmt.Sprintf("invalid query: %s", e.Reason)
}

func (e InvalidQueryError) Is(target error) bool {
	_, ok := target.(InvalidQueryError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidQueryError)
	return ok
}

var ErrInvalidQuery = InvalidQueryError{}

// InvalidActorError represents a malformed or missing actor identifier
// where one is required.
type InvalidActorError struct {
	Actor string
}

func (e InvalidActorError) Error() string {
	if e.Actor == "" {
		return "invalid actor"
	}
	return fmt.Sprintf("invalid actor: %s", e.Actor)
}

func (e InvalidActorError) Is(target error) bool {
	_, ok := target.(InvalidActorError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidActorError)
	return ok
}

var ErrInvalidActor = InvalidActorError{}

// UnauthorizedError represents an operation that requires a resolved actor
// performed without one.
type UnauthorizedError struct{}

func (e UnauthorizedError) Error() string { return "unauthorized" }

func (e UnauthorizedError) Is(target error) bool {
	_, ok := target.(UnauthorizedError)
	if ok {
		return true
	}
	_, ok = target.(*UnauthorizedError)
	return ok
}

var ErrUnauthorized = UnauthorizedError{}

// StoreUnavailableError wraps a transient store failure. It is retryable by
// the caller and propagated unchanged through the ranking and pagination
// layers.
type StoreUnavailableError struct {
	Cause error
}

func (e StoreUnavailableError) Error() string {
	if e.Cause == nil {
		return "store unavailable"
	}
	return fmt.Sprintf("store unavailable: %v", e.Cause)
}

func (e StoreUnavailableError) Unwrap() error { return e.Cause }

func (e StoreUnavailableError) Is(target error) bool {
	_, ok := target.(StoreUnavailableError)
	if ok {
		return true
	}
	_, ok = target.(*StoreUnavailableError)
	return ok
}

var ErrStoreUnavailable = StoreUnavailableError{}
