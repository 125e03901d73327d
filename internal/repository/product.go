package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mercato/mercato/internal/model"
)

// ErrProductNotFound is returned when a product does not exist or is
// not visible to the requester.
var ErrProductNotFound = errors.New("product not found")

// CreateProduct inserts a new product and fills in the assigned ID.
func (r *Repository) CreateProduct(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, description, price, quantity, image_file, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Quantity,
		product.ImageFile,
		product.OwnerID,
		product.CreatedAt,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProductByID retrieves a product by its ID.
func (r *Repository) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, description, price, quantity, COALESCE(image_file, ''), owner_id, created_at
		FROM products
		WHERE id = $1
	`

	var product model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&product.ImageFile,
		&product.OwnerID,
		&product.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return &product, nil
}

// ListProducts returns a page of products ordered by ID.
func (r *Repository) ListProducts(ctx context.Context, skip, limit int) ([]*model.Product, error) {
	query := `
		SELECT id, name, description, price, quantity, COALESCE(image_file, ''), owner_id, created_at
		FROM products
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		var product model.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Quantity,
			&product.ImageFile,
			&product.OwnerID,
			&product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// CountProducts returns the total number of products.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// DeleteProductOwned deletes a product only if the given user owns it.
// The ownership check and the delete are one conditional statement, so
// a concurrent delete of the same product cannot interleave with it.
// Returns ErrProductNotFound for both a missing product and an
// ownership mismatch; callers must not distinguish the two.
func (r *Repository) DeleteProductOwned(ctx context.Context, productID, ownerID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND owner_id = $2`,
		productID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
