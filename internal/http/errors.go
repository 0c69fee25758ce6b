package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

// ErrorHandler renders every error as {"message": ...}. Errors that are not
// caller-facing are logged and reported as a bare 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperrors.Exception
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status, message = appErr.StatusCode, appErr.Message
	case errors.As(err, &httpErr):
		status, message = httpErr.Code, fmt.Sprint(httpErr.Message)
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, dto.ErrorResponse{Message: message})
	}
	if err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}
