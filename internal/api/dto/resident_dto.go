package dto

import "time"

// ResidentResponse is one resident on the admin directory listing.
type ResidentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Contact    string    `json:"contact"`
	FlatNumber string    `json:"flatNumber"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}
