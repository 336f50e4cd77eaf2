package models

// Identity is the JSON body for POST /jwt.
type Identity struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse is returned by POST /jwt alongside the cookie.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
