package dto

import "github.com/mercato/mercato/internal/model"

// CartAddRequest represents the request body for adding to the cart.
type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartLineResponse represents one cart line in API responses.
type CartLineResponse struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
}

// CartResponse represents the whole cart.
type CartResponse struct {
	Data []CartLineResponse `json:"data"`
}

// ToCartResponse converts cart lines to their API shape.
func ToCartResponse(lines []*model.CartLine) CartResponse {
	data := make([]CartLineResponse, 0, len(lines))
	for _, line := range lines {
		data = append(data, CartLineResponse{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice,
			Quantity:     line.Quantity,
		})
	}
	return CartResponse{Data: data}
}
