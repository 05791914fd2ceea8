package rockset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error represents an error response from the server.
type Error struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
	// Type is the error category reported by the server, e.g. NOTFOUND.
	Type string `json:"type"`
	// Message is the human-readable error message.
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Type, e.Message)
}

// IsNotFound reports whether err is a remote error with a 404 status.
// The absence-polling loops use this as their success condition.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func checkStatusCodeOK(resp *http.Response) error {
	return checkStatusCode(resp, http.StatusOK)
}

func checkStatusCode(resp *http.Response, expected int) error {
	if resp.StatusCode == expected {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	msg := string(data)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	var errResp Error
	if err := json.Unmarshal(data, &errResp); err != nil || errResp.Message == "" {
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	errResp.StatusCode = resp.StatusCode
	return &errResp
}

// sneakyBodyClose closes the body and ignores the error.
// This is useful to close the HTTP response body when we don't care about the error.
func sneakyBodyClose(body io.ReadCloser) {
	if body != nil {
		_ = body.Close()
	}
}
