package server

import (
	"fmt"
	"net/http"
)

// ErrSchemeNotFound indicates the requested scheme does not exist
type ErrSchemeNotFound struct {
	Key string
}

func (e *ErrSchemeNotFound) Error() string {
	return fmt.Sprintf("scheme not found: %s", e.Key)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSchemeNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
