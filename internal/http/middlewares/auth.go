package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

const callerIDKey = "caller_id"

type CallerResolver interface {
	ResolveCaller(ctx context.Context, credential string) (string, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header and stores
// the resolved caller id on the context for CallerID.
func Authenticate(resolver CallerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return apperrors.ErrUnauthorized
			}

			callerID, err := resolver.ResolveCaller(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(callerIDKey, callerID)
			return next(c)
		}
	}
}

func CallerID(c echo.Context) string {
	id, _ := c.Get(callerIDKey).(string)
	return id
}
