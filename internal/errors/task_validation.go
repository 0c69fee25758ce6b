package errors

import "net/http"

var ErrTitleRequired = &Exception{
	Kind:       KindValidation,
	Message:    "title is required",
	StatusCode: http.StatusBadRequest,
}

var ErrTitleTooLong = &Exception{
	Kind:       KindValidation,
	Message:    "title must be at most 200 characters",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidStatus = &Exception{
	Kind:       KindValidation,
	Message:    "status must be one of: pending, in-progress, completed",
	StatusCode: http.StatusBadRequest,
}
