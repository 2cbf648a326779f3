package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
	"github.com/nivapos/catalog-service/internal/product"
	"github.com/nivapos/catalog-service/internal/product/dto"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/products", h.Create)
	mux.HandleFunc("GET /v1/products", h.List)
	mux.HandleFunc("POST /v1/products/reserve", h.Reserve)
	mux.HandleFunc("GET /v1/products/{id}", h.Get)
	mux.HandleFunc("PUT /v1/products/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/products/{id}", h.Delete)
	mux.HandleFunc("POST /v1/products/{id}/variants", h.AddVariant)
	mux.HandleFunc("GET /v1/products/{id}/variants", h.ListVariants)
}

type productResponse struct {
	Product *model.Product `json:"product"`
}

type productListResponse struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
}

type variantResponse struct {
	Variant *model.ProductVariant `json:"variant"`
}

type variantListResponse struct {
	Variants []model.ProductVariant `json:"variants"`
}

type reserveRequest struct {
	Items map[string]float64 `json:"items"` // product id -> quantity
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.CreateProductInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" || input.SKU == "" {
		httputil.Error(w, http.StatusBadRequest, "name and sku are required")
		return
	}
	input.MerchantID = merchantID

	p, err := h.uc.CreateProduct(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, productResponse{Product: p})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	p, err := h.uc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if p == nil || p.MerchantID != merchantID {
		httputil.Error(w, http.StatusNotFound, "product not found")
		return
	}

	httputil.JSON(w, http.StatusOK, productResponse{Product: p})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	filters := &dto.ProductFilters{
		MerchantID:  merchantID,
		SearchQuery: q.Get("q"),
		SortBy:      q.Get("sort_by"),
		SortOrder:   q.Get("sort_order"),
	}
	if v := q.Get("category_id"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		filters.CategoryID = &categoryID
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if filters.Page < 1 {
		filters.Page = 1
	}

	products, total, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}

	httputil.JSON(w, http.StatusOK, productListResponse{Products: products, Total: total})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.UpdateProductInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" || input.SKU == "" {
		httputil.Error(w, http.StatusBadRequest, "name and sku are required")
		return
	}
	input.ID = r.PathValue("id")
	input.MerchantID = merchantID

	p, err := h.uc.UpdateProduct(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, productResponse{Product: p})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	p, err := h.uc.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if p != nil && p.MerchantID != merchantID {
		httputil.Error(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.uc.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.CreateVariantInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.VariantName == "" || input.SKU == "" {
		httputil.Error(w, http.StatusBadRequest, "variant_name and sku are required")
		return
	}
	input.ProductID = r.PathValue("id")

	v, err := h.uc.AddVariant(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, variantResponse{Variant: v})
}

func (h *ProductHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	variants, err := h.uc.ListVariants(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if variants == nil {
		variants = []model.ProductVariant{}
	}

	httputil.JSON(w, http.StatusOK, variantListResponse{Variants: variants})
}

func (h *ProductHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req reserveRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		httputil.Error(w, http.StatusBadRequest, "items are required")
		return
	}

	if err := h.uc.ReserveStock(r.Context(), req.Items); err != nil {
		// Reservation failures are contention, not server faults.
		httputil.Error(w, http.StatusConflict, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, product.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, product.ErrSKUExists), errors.Is(err, product.ErrBarcodeExists):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("product handler failure", zap.Error(err))
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
