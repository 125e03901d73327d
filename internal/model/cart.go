// Package model defines domain entities for the application.
package model

import "time"

// CartLine is one (user, product) entry in a shopping cart.
// A line exists only with Quantity >= 1; removal deletes the row.
type CartLine struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Denormalized product fields populated by cart view queries.
	ProductName  string  `json:"product_name,omitempty"`
	ProductPrice float64 `json:"product_price,omitempty"`
}
