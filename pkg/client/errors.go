package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse marks a 2xx response whose body is not a valid roadmap.
var ErrMalformedResponse = errors.New("client: malformed response")

// HTTPError is implemented by errors that carry an HTTP status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "unexpected status"
	}
	if e.Body == "" {
		return fmt.Sprintf("client: %d %s", e.Code, text)
	}
	return fmt.Sprintf("client: %d %s: %s", e.Code, text, e.Body)
}

// StatusCode returns the response status.
func (e *StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}
