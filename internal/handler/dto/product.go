package dto

import (
	"time"

	"github.com/mercato/mercato/internal/model"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	ImageFile   string    `json:"image_file,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToProductResponse converts a product model to its API shape.
func ToProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		ImageFile:   p.ImageFile,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

// ProductListResponse represents a page of the catalog.
type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
}

// ToProductListResponse converts a page of products.
func ToProductListResponse(products []*model.Product) ProductListResponse {
	data := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, ToProductResponse(p))
	}
	return ProductListResponse{Data: data}
}

// TotalPagesResponse reports how many pages the catalog spans.
type TotalPagesResponse struct {
	TotalPages int64 `json:"total_pages"`
}
