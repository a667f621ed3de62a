package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomizedError carries the logic location that raised the error, an i18n
// message code for the user-facing text and the http status the API layer
// should answer with.
type CustomizedError struct {
	location    string
	messageCode string
	httpCode    int
	err         error
}

func New(location, messageCode string, err error) *CustomizedError {
	return &CustomizedError{
		location:    location,
		messageCode: messageCode,
		httpCode:    http.StatusInternalServerError,
		err:         err,
	}
}

// Trace prepends location to an already customized error so the logic call
// chain stays readable in logs. Raw errors get wrapped as internal.
func Trace(location string, err error) *CustomizedError {
	var ce *CustomizedError
	if errors.As(err, &ce) {
		ce.location = location + "." + ce.location
		return ce
	}
	return New(location, "error.internal", err)
}

func (e *CustomizedError) Code(httpCode int) *CustomizedError {
	e.httpCode = httpCode
	return e
}

func (e *CustomizedError) HTTPCode() int {
	return e.httpCode
}

func (e *CustomizedError) MessageCode() string {
	return e.messageCode
}

func (e *CustomizedError) Unwrap() error {
	return e.err
}

func (e *CustomizedError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %s", e.location, e.messageCode)
	}
	return fmt.Sprintf("%s: %s", e.location, e.err.Error())
}
