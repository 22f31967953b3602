package errors

import "net/http"

// HTTPError is an error that knows which status code and message to answer with.
type HTTPError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError builds an HTTPError whose error code mirrors the status.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:       status,
		Message:    message,
		StatusCode: status,
	}
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad request")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not found")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")
)
