package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError a failure reported to the browser with the status it carries
type HTTPError struct {
	Status int
	Err    error
}

func (httpError *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %v", httpError.Status, http.StatusText(httpError.Status), httpError.Err)
}

func (httpError *HTTPError) Unwrap() error {
	return httpError.Err
}

// NewHTTPError a nil err is reported with the status text
func NewHTTPError(status int, err error) *HTTPError {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	return &HTTPError{Status: status, Err: err}
}

// BadRequest rejects user input. Errors matching one of notFound are reported as 404 instead.
func BadRequest(err error, notFound ...error) *HTTPError {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return NewHTTPError(http.StatusNotFound, err)
		}
	}
	return NewHTTPError(http.StatusBadRequest, err)
}
