// Package apperr carries the status/code pairs the HTTP boundary maps
// errors onto. Services raise these at the point of detection; handlers
// translate them 1:1 into {error, code} JSON bodies.
package apperr

import "errors"

type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
