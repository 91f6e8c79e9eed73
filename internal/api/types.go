// Package api defines the JSON request/response types shared by the HTTP
// transport layer and the terminal client.
package api

// LoginRequest represents the request body for the /login endpoint.
// Both fields are required; the email must be well-formed.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
// UserID is the bearer identity used in the x-user-id header; Token is a
// signed session token accepted as an Authorization: Bearer alternative.
type LoginResponse struct {
	UserID uint   `json:"userId"`
	Token  string `json:"token,omitempty"`
}

// UserSummary is the subset of a user safe to return to clients.
// The password hash is never serialized.
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// SetupResponse confirms the idempotent default-user provisioning.
type SetupResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// CountResponse carries today's counter value.
type CountResponse struct {
	Count uint `json:"count"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body for all 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
