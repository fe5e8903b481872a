package entities

import "time"

// Customer is keyed by username and upserted on every checkout.
type Customer struct {
	Username    string    `json:"username"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
