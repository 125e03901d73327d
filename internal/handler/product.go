package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mercato/mercato/internal/auth"
	"github.com/mercato/mercato/internal/handler/dto"
	"github.com/mercato/mercato/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	svc           *service.CatalogService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger, maxUploadSize: maxUploadSize}
}

// List handles GET /products?skip=&limit=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 10)

	products, err := h.svc.ListProducts(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("list products failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductListResponse(products))
}

// TotalPages handles GET /products/total_pages?limit=.
func (h *ProductHandler) TotalPages(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	pages, err := h.svc.TotalPages(r.Context(), limit)
	if err != nil {
		h.logger.Error("total pages failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to count products")
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalPagesResponse{TotalPages: pages})
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product ID must be numeric")
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
			return
		}
		h.logger.Error("get product failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// Create handles POST /products (multipart form).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "price must be numeric")
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "quantity must be an integer")
		return
	}

	input := service.CreateProductInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Quantity:    quantity,
		OwnerID:     user.ID,
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		input.Image = file
		input.ImageName = header.Filename
	case errors.Is(err, http.ErrMissingFile):
		// Image is optional.
	default:
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid image upload")
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingName),
			errors.Is(err, service.ErrInvalidPrice),
			errors.Is(err, service.ErrInvalidStock),
			errors.Is(err, service.ErrBadImage):
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			h.logger.Error("create product failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create product")
		}
		return
	}

	h.logger.Info("product_created",
		slog.Int64("product_id", product.ID),
		slog.Int64("owner_id", user.ID),
	)
	writeJSON(w, http.StatusCreated, dto.ToProductResponse(product))
}

// Delete handles DELETE /products/{id}.
// Missing products and products owned by someone else get the same 404.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "product ID must be numeric")
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id, user.ID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
			return
		}
		h.logger.Error("delete product failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete product")
		return
	}

	h.logger.Info("product_deleted",
		slog.Int64("product_id", id),
		slog.Int64("owner_id", user.ID),
	)
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
