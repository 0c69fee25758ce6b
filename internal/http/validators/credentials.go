package validators

import (
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
)

// ValidateCredentialsRequest checks presence only; length rules belong to
// the auth service.
func ValidateCredentialsRequest(r *dto.CredentialsRequest) error {
	if r.Username == "" || r.Password == "" {
		return apperrors.ErrCredentialsRequired
	}
	return nil
}
