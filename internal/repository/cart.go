package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercato/mercato/internal/model"
)

// ErrCartLineNotFound is returned when removing a cart line that does
// not exist.
var ErrCartLineNotFound = errors.New("cart line not found")

// AddCartLine adds qty of a product to a user's cart, creating the line
// or incrementing an existing one.
//
// The increment is a single upsert statement keyed on (user_id,
// product_id); Postgres row locking serializes concurrent adds for the
// same key, so N concurrent adds of 1 always leave quantity N. The
// product existence check runs inside the same transaction, and the
// foreign key on cart_lines catches a product deleted between the check
// and the insert.
func (r *Repository) AddCartLine(ctx context.Context, userID, productID int64, qty int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`,
		productID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return ErrProductNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO cart_lines (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = now()
	`, userID, productID, qty)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cart transaction: %w", err)
	}

	return nil
}

// ViewCart returns the user's cart lines joined with product name and
// price, ordered by product ID. The ordering is stable across calls
// absent mutation.
func (r *Repository) ViewCart(ctx context.Context, userID int64) ([]*model.CartLine, error) {
	query := `
		SELECT c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
		       p.name, p.price
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.product_id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to view cart: %w", err)
	}
	defer rows.Close()

	var lines []*model.CartLine
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(
			&line.UserID,
			&line.ProductID,
			&line.Quantity,
			&line.CreatedAt,
			&line.UpdatedAt,
			&line.ProductName,
			&line.ProductPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

// RemoveCartLine deletes a cart line regardless of its quantity.
// Removing an absent line is an error, not a silent success.
func (r *Repository) RemoveCartLine(ctx context.Context, userID, productID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_lines WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrCartLineNotFound
	}

	return nil
}
