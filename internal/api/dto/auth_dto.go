package dto

import "time"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for account creation. Admin self-registration and
// admin-created residents share this contract; only the role differs.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Contact    string `json:"contact,omitempty"`
	Role       string `json:"role,omitempty"`
	FlatNumber string `json:"flatNumber,omitempty"`
}

// PrincipalResponse is the authenticated session record returned by both
// auth endpoints: identity, role and bearer token in one flat object.
type PrincipalResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Contact    string    `json:"contact,omitempty"`
	FlatNumber string    `json:"flatNumber,omitempty"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
