package dto

import model "task-tracker.com/task-tracker/internal/models"

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
