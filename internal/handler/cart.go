package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mercato/mercato/internal/auth"
	"github.com/mercato/mercato/internal/handler/dto"
	"github.com/mercato/mercato/internal/service"
)

// CartHandler handles cart endpoints. Every operation acts on the
// authenticated user's own cart.
type CartHandler struct {
	svc    *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, logger: logger}
}

// Add handles POST /cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.CartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.Add(r.Context(), user.ID, req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		default:
			h.logger.Error("cart add failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to add to cart")
		}
		return
	}

	h.logger.Info("cart_line_added",
		slog.Int64("user_id", user.ID),
		slog.Int64("product_id", req.ProductID),
		slog.Int("quantity", req.Quantity),
	)
	w.WriteHeader(http.StatusCreated)
}

// View handles GET /cart.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	lines, err := h.svc.View(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("cart view failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCartResponse(lines))
}

// Remove handles DELETE /cart/{product_id}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product ID must be numeric")
		return
	}

	if err := h.svc.Remove(r.Context(), user.ID, productID); err != nil {
		if errors.Is(err, service.ErrLineNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "cart line not found")
			return
		}
		h.logger.Error("cart remove failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to remove from cart")
		return
	}

	h.logger.Info("cart_line_removed",
		slog.Int64("user_id", user.ID),
		slog.Int64("product_id", productID),
	)
	w.WriteHeader(http.StatusNoContent)
}
