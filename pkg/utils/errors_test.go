package utils

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"net/http"
	"testing"
)

func TestHTTPError(t *testing.T) {
	errUnknownColumn := errors.New("unknown column")

	t.Run("should report rejected input as a bad request", func(t *testing.T) {
		httpError := BadRequest(errors.New("outcome is not provided"))
		assert.Equal(t, http.StatusBadRequest, httpError.Status)
		assert.Equal(t, "400 Bad Request: outcome is not provided", httpError.Error())
	})

	t.Run("should report a wrapped not found error as 404", func(t *testing.T) {
		httpError := BadRequest(fmt.Errorf("%w: %q", errUnknownColumn, "colour"), errUnknownColumn)
		assert.Equal(t, http.StatusNotFound, httpError.Status)
		assert.ErrorIs(t, httpError, errUnknownColumn)
	})

	t.Run("should fall back to the status text", func(t *testing.T) {
		httpError := NewHTTPError(http.StatusInternalServerError, nil)
		assert.EqualError(t, httpError.Err, "Internal Server Error")
	})
}
