package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/services"
)

func (h *Handler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	session, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse(session))
}

func (h *Handler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse(session))
}

func (h *Handler) Me(c echo.Context) error {
	user, err := h.authService.Me(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func bindCredentials(c echo.Context) (*dto.CredentialsRequest, error) {
	var req dto.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateCredentialsRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func authResponse(session *services.Session) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   session.ExpiresIn,
		User:        session.User,
	}
}
