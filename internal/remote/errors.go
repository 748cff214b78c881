package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidUUID is returned when a delete target is not a UUID.
var ErrInvalidUUID = errors.New("invalid repository uuid")

// ErrNotFound is returned by MemorySource when a repository does not exist.
var ErrNotFound = errors.New("repository not found")

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4096

// APIError is a non-2xx response from the content API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// NotFound reports whether the API answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err means the repository does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
