package service

import (
	"context"
	"errors"

	"github.com/mercato/mercato/internal/metrics"
	"github.com/mercato/mercato/internal/model"
	"github.com/mercato/mercato/internal/repository"
)

// Cart service errors.
var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("cart line not found")
)

// CartService handles per-user cart mutations. Each operation is scoped
// to the authenticated user's own cart, so no ownership guard applies.
type CartService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewCartService creates a new CartService.
func NewCartService(repo *repository.Repository, recorder metrics.Recorder) *CartService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CartService{repo: repo, metrics: recorder}
}

// Add puts qty of a product into the user's cart. Repeat adds increment
// the existing line; the increment itself is atomic in the store.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	if err := s.repo.AddCartLine(ctx, userID, productID, qty); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.metrics.IncCartAdd()
	return nil
}

// View returns the user's cart, ordered by product ID.
func (s *CartService) View(ctx context.Context, userID int64) ([]*model.CartLine, error) {
	return s.repo.ViewCart(ctx, userID)
}

// Remove deletes a line from the user's cart whatever its quantity.
// Removing an absent line is ErrLineNotFound, not a silent success.
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.repo.RemoveCartLine(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return ErrLineNotFound
		}
		return err
	}

	s.metrics.IncCartRemove()
	return nil
}
