package response

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithError returns a copy of the error with an error cause in its details.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

var (
	ErrBadRequest          = newHTTPError(http.StatusBadRequest)
	ErrUnauthorized        = newHTTPError(http.StatusUnauthorized)
	ErrForbidden           = newHTTPError(http.StatusForbidden)
	ErrNotFound            = newHTTPError(http.StatusNotFound)
	ErrMethodNotAllowed    = newHTTPError(http.StatusMethodNotAllowed)
	ErrTooManyRequests     = newHTTPError(http.StatusTooManyRequests)
	ErrInternalServerError = newHTTPError(http.StatusInternalServerError)
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable)
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
}

func newHTTPError(status int) HTTPError {
	text := http.StatusText(status)
	return HTTPError{
		Status:  status,
		Code:    strings.ReplaceAll(strings.ToLower(text), " ", "_"),
		Message: text,
	}
}

// ErrorForStatus returns the HTTPError for status, building one for codes
// without a predefined value.
func ErrorForStatus(status int) HTTPError {
	if e, ok := httpErrorsByStatus[status]; ok {
		return e
	}
	return newHTTPError(status)
}

type statusCode interface {
	StatusCode() int
}

func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var sc statusCode
	if errors.As(err, &sc) {
		return ErrorForStatus(sc.StatusCode())
	}

	// Internal details stay out of the response body.
	return ErrInternalServerError
}

// ErrorHandler writes err as a plain text response.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := convertToHTTPError(err)
	_ = StringWithStatus(httpErr.Message, httpErr.Status)(w, r)
}

// JSONErrorHandler writes err as a JSON response.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := convertToHTTPError(err)
	_ = JSONWithStatus(httpErr, httpErr.Status)(w, r)
}
