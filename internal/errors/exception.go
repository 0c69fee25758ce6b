package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
	KindRateLimited  Kind = "rate_limited"
)

// Exception is a caller-facing failure. Sentinels are compared by identity,
// so return them as-is rather than copying.
type Exception struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func KindOf(err error) (Kind, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsValidation(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindValidation
}
