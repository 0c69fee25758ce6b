package validators

import (
	"strings"

	apperrors "task-tracker.com/task-tracker/internal/errors"
)

func ValidateTaskID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrTaskIDRequired
	}
	return nil
}
