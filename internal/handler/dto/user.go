// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
}
