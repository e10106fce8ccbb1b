package utils

import (
	"errors"
	"execdash/pkg/constants/headers"
	"github.com/goccy/go-json"
	"net/http"
	"strings"
)

type Response struct {
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
}

func (r *Response) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

func SendJSON(w http.ResponseWriter, data interface{}, success bool, status int, extraHeaders map[string]string) {
	resObj := Response{Data: data, Success: success}

	body, err := resObj.ToJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Add(headers.ContentTypeHeader, headers.JSONContentType)

	for header, val := range extraHeaders {
		w.Header().Add(header, val)
	}

	w.WriteHeader(status)
	if status != http.StatusNoContent {
		_, _ = w.Write(body)
	}
}

// SendHTTPError writes a failed response using the status carried by the error
func SendHTTPError(w http.ResponseWriter, err *HTTPError) {
	SendJSON(w, err.Err.Error(), false, err.Status, nil)
}

// ValidateFormValue returns a posted form value, an error when the key was not posted at all.
// An empty value is allowed since clearing a dropdown posts an empty selection.
func ValidateFormValue(key string, r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", err
	}

	values, ok := r.PostForm[key]
	if !ok || len(values) < 1 {
		return "", errors.New(key + " is not provided")
	}

	return strings.TrimSpace(values[0]), nil
}
