// Package web defines common components for a web application.
package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindError turns a request binding error into a readable response.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Response{Error: GetErrorMsg(ve)}
	}

	return Error(err)
}

// GetErrorMsg describes the first failed validation rule.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return ""
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "account":
		return fe.Field() + " must be 1-64 characters without spaces"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	}

	return fe.Field() + " is invalid"
}
