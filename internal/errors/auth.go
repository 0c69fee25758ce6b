package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Kind:       KindUnauthorized,
	Message:    "missing or invalid bearer token",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Kind:       KindUnauthorized,
	Message:    "invalid username or password",
	StatusCode: http.StatusUnauthorized,
}

var ErrCredentialsRequired = &Exception{
	Kind:       KindValidation,
	Message:    "username and password are required",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidUsername = &Exception{
	Kind:       KindValidation,
	Message:    "username must be between 3 and 50 characters",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidPassword = &Exception{
	Kind:       KindValidation,
	Message:    "password must be between 6 and 72 characters",
	StatusCode: http.StatusBadRequest,
}

var ErrUsernameTaken = &Exception{
	Kind:       KindConflict,
	Message:    "username already taken",
	StatusCode: http.StatusConflict,
}
