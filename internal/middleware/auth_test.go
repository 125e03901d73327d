package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mercato/mercato/internal/auth"
	"github.com/mercato/mercato/internal/model"
	"github.com/mercato/mercato/internal/repository"
)

type staticUserStore struct {
	users map[int64]*model.User
}

func (s *staticUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func newAuthTestEnv(t *testing.T, ttl time.Duration) (*auth.TokenService, http.Handler) {
	t.Helper()

	tokens := auth.NewTokenService([]byte("middleware-test-secret-key!!!!!!"), ttl)
	store := &staticUserStore{users: map[int64]*model.User{
		1: {ID: 1, Email: "known@example.com"},
	}}
	resolver := auth.NewResolver(tokens, store)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := Auth(AuthConfig{Logger: logger, Resolver: resolver})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := auth.MustUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(user.Email))
	})

	return tokens, mw(next)
}

func doAuthRequest(t *testing.T, handler http.Handler, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func authErrorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	return body.Error.Message
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens, handler := newAuthTestEnv(t, time.Hour)
	token, err := tokens.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	rec := doAuthRequest(t, handler, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "known@example.com" {
		t.Errorf("handler saw wrong user: %q", rec.Body.String())
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	tokens, handler := newAuthTestEnv(t, time.Hour)

	expiredTokens, _ := newAuthTestEnv(t, -time.Minute)
	expired, err := expiredTokens.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Wrong signing key.
	foreign, err := auth.NewTokenService([]byte("a different secret entirely!!!!!"), time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Valid token, but no such account.
	unknown, err := tokens.Issue(404)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name        string
		header      string
		wantMessage string
	}{
		{"missing header", "", "invalid token"},
		{"not bearer", "Basic abc", "invalid token"},
		{"garbage token", "Bearer nonsense", "invalid token"},
		{"bad signature", "Bearer " + foreign, "invalid token"},
		{"expired", "Bearer " + expired, "token has expired"},
		{"unknown subject", "Bearer " + unknown, "user not found"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := doAuthRequest(t, handler, tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if got := authErrorMessage(t, rec); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}
