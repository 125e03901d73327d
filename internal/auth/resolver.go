package auth

import (
	"context"
	"errors"

	"github.com/mercato/mercato/internal/model"
	"github.com/mercato/mercato/internal/repository"
)

// ErrUnknownSubject indicates a cryptographically valid token whose
// subject no longer exists in the credential store.
var ErrUnknownSubject = errors.New("user not found")

// UserStore is the slice of the repository the resolver needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// Resolver derives an authenticated user from a bearer token.
// It never trusts the token's claim that the subject exists: every
// resolution re-reads the credential store.
type Resolver struct {
	tokens *TokenService
	users  UserStore
}

// NewResolver creates a Resolver backed by the given token service and
// user store.
func NewResolver(tokens *TokenService, users UserStore) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve verifies the token and loads the subject from the store.
// Verification failures propagate unchanged (ErrTokenMalformed,
// ErrTokenBadSignature, ErrTokenExpired); a valid token for a deleted
// account yields ErrUnknownSubject.
func (r *Resolver) Resolve(ctx context.Context, tokenString string) (*model.User, error) {
	userID, err := r.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}
	return user, nil
}
