// Package model defines domain entities for the application.
package model

import "time"

// Product represents a catalog listing owned by a single user.
// OwnerID is set at creation and never changes.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageFile   string    `json:"image_file,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}
