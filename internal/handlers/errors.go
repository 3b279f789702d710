package handlers

import (
	"strings"

	huma "github.com/danielgtaylor/huma/v2"
)

// APIError is the body of every failed request: {"error": "<message>"}.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Human readable error message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) GetStatus() int {
	return e.Status
}

func init() {
	// Errors raised by huma itself (unreadable multipart bodies, missing
	// context values, auth) get the same shape as the handlers' errors.
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, err.Error())
			}
		}
		if len(details) > 0 {
			msg += ": " + strings.Join(details, "; ")
		}
		return &APIError{Status: status, Message: msg}
	}
}
