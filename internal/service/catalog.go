package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/mercato/mercato/internal/cache"
	"github.com/mercato/mercato/internal/metrics"
	"github.com/mercato/mercato/internal/model"
	"github.com/mercato/mercato/internal/repository"
	"github.com/mercato/mercato/internal/upload"
)

// Catalog service errors.
var (
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStock    = errors.New("quantity must not be negative")
	ErrMissingName     = errors.New("product name is required")
	ErrProductNotFound = errors.New("product not found")
	ErrBadImage        = errors.New("unsupported image type")
)

// Listing pagination bounds.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CatalogService handles product listings.
type CatalogService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	images  *upload.Store
	metrics metrics.Recorder
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo *repository.Repository, cache *cache.Cache, images *upload.Store, recorder metrics.Recorder) *CatalogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CatalogService{repo: repo, cache: cache, images: images, metrics: recorder}
}

// CreateProductInput defines input for creating a listing.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	OwnerID     int64

	// Image is optional; ImageName carries the client's filename for
	// extension sniffing.
	Image     io.Reader
	ImageName string
}

// CreateProduct validates the listing, stores the image if present, and
// persists the product owned by the caller.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrMissingName
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidStock
	}

	var imageFile string
	if input.Image != nil {
		filename, err := s.images.Save(input.Image, input.ImageName)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedType) {
				return nil, ErrBadImage
			}
			return nil, err
		}
		imageFile = filename
	}

	product := &model.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageFile:   imageFile,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		// Do not leave an orphaned file behind a failed insert.
		if imageFile != "" {
			_ = s.images.Remove(imageFile)
		}
		return nil, err
	}

	s.metrics.IncProductCreated()
	return product, nil
}

// GetProduct returns one product, consulting the cache first.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	if cached, _ := s.cache.GetProduct(ctx, id); cached != nil {
		s.metrics.IncProductCacheHit()
		return cached, nil
	}
	s.metrics.IncProductCacheMiss()

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	_ = s.cache.SetProduct(ctx, product)
	return product, nil
}

// ListProducts returns a page of the catalog.
func (s *CatalogService) ListProducts(ctx context.Context, skip, limit int) ([]*model.Product, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListProducts(ctx, skip, limit)
}

// TotalPages reports how many pages of the given size the catalog spans.
func (s *CatalogService) TotalPages(ctx context.Context, limit int) (int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	return (count + int64(limit) - 1) / int64(limit), nil
}

// DeleteProduct deletes a listing on behalf of its owner. Missing
// products and ownership mismatches are both ErrProductNotFound: a
// caller cannot probe for listings it does not own. Referencing cart
// lines cascade away with the product.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID, requesterID int64) error {
	// Fetch first so the stored image can be cleaned up after a
	// successful delete. The authoritative ownership check stays inside
	// the conditional DELETE; this read only feeds the cleanup.
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.repo.DeleteProductOwned(ctx, productID, requesterID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	_ = s.cache.InvalidateProduct(ctx, productID)
	if product.ImageFile != "" {
		_ = s.images.Remove(product.ImageFile)
	}

	s.metrics.IncProductDeleted()
	return nil
}
