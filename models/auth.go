package models

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the envelope for every non-entity response:
// confirmations, auth failures, validation errors.
type MessageResponse struct {
	Message string `json:"message"`
}
