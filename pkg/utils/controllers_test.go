package utils

import (
	"errors"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	data := map[string]interface{}{
		"message": "Hello, world!",
	}

	expectedStatusCode := http.StatusOK

	expectedHeaders := map[string]string{
		"Custom-Header": "Custom Value",
	}

	SendJSON(recorder, data, true, expectedStatusCode, expectedHeaders)

	response := recorder.Result()
	defer response.Body.Close()

	assert.Equal(t, expectedStatusCode, response.StatusCode, "Response status code should match")
	assert.Equal(t, "application/json", response.Header.Get("Content-Type"))

	for key, value := range expectedHeaders {
		assert.Equal(t, value, response.Header.Get(key), "Response header value should match")
	}

	actualResponseBody, err := io.ReadAll(response.Body)
	assert.NoError(t, err, "Failed to read response body")

	var actualResponse Response
	err = json.Unmarshal(actualResponseBody, &actualResponse)
	assert.NoError(t, err, "Failed to unmarshal response body")

	assert.Equal(t, data, actualResponse.Data, "Response data should match")
	assert.True(t, actualResponse.Success, "Response success flag should be true")
}

func TestSendHTTPError(t *testing.T) {
	recorder := httptest.NewRecorder()

	SendHTTPError(recorder, BadRequest(errors.New("outcome is not provided")))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var actualResponse Response
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actualResponse))
	assert.False(t, actualResponse.Success)
	assert.Equal(t, "outcome is not provided", actualResponse.Data)
}

func TestValidateFormValue(t *testing.T) {
	t.Run("returns the posted value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/filters/outcome", strings.NewReader("outcome=failedOnly"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		value, err := ValidateFormValue("outcome", req)
		assert.NoError(t, err)
		assert.Equal(t, "failedOnly", value)
	})

	t.Run("allows an empty value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/filters/relationship", strings.NewReader("field="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		value, err := ValidateFormValue("field", req)
		assert.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("fails when the key is missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/filters/relationship", strings.NewReader("other=1"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		_, err := ValidateFormValue("field", req)
		assert.Error(t, err)
	})
}
