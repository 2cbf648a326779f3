package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/inventory"
	"github.com/nivapos/catalog-service/internal/inventory/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/inventory", h.List)
	mux.HandleFunc("GET /v1/inventory/low-stock", h.ListLowStock)
	mux.HandleFunc("POST /v1/inventory/adjust", h.Adjust)
	mux.HandleFunc("POST /v1/inventory/transfer", h.Transfer)
	mux.HandleFunc("GET /v1/inventory/movements", h.ListMovements)
	mux.HandleFunc("GET /v1/inventory/{productID}", h.GetByProduct)
}

type inventoryResponse struct {
	Inventory *model.Inventory `json:"inventory"`
}

type inventoryListResponse struct {
	Items []model.Inventory `json:"items"`
	Total int               `json:"total"`
}

type movementListResponse struct {
	Movements []model.InventoryMovement `json:"movements"`
	Total     int                       `json:"total"`
}

type adjustRequest struct {
	StoreID        *string `json:"store_id"`
	ProductID      string  `json:"product_id"`
	VariantID      *string `json:"variant_id"`
	QuantityChange float64 `json:"quantity_change"`
	Reason         string  `json:"reason"`
	ReferenceID    string  `json:"reference_id"`
}

type transferRequest struct {
	SourceStoreID *string `json:"source_store_id"`
	TargetStoreID *string `json:"target_store_id"`
	ProductID     string  `json:"product_id"`
	VariantID     *string `json:"variant_id"`
	Quantity      float64 `json:"quantity"`
	Reason        string  `json:"reason"`
}

func storeIDParam(r *http.Request) *string {
	if v := r.URL.Query().Get("store_id"); v != "" {
		return &v
	}
	return nil
}

func (h *InventoryHandler) GetByProduct(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	inv, err := h.uc.GetProductInventory(r.Context(), merchantID, r.PathValue("productID"), storeIDParam(r))
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, inventoryResponse{Inventory: inv})
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	filters := &dto.InventoryFilters{
		MerchantID: merchantID,
		StoreID:    storeIDParam(r),
		ProductID:  q.Get("product_id"),
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if filters.Page < 1 {
		filters.Page = 1
	}

	items, total, err := h.uc.ListInventory(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if items == nil {
		items = []model.Inventory{}
	}

	httputil.JSON(w, http.StatusOK, inventoryListResponse{Items: items, Total: total})
}

func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if page < 1 {
		page = 1
	}

	items, total, err := h.uc.ListLowStock(r.Context(), merchantID, storeIDParam(r), page, pageSize)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if items == nil {
		items = []model.Inventory{}
	}

	httputil.JSON(w, http.StatusOK, inventoryListResponse{Items: items, Total: total})
}

func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req adjustRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		httputil.Error(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.QuantityChange == 0 {
		httputil.Error(w, http.StatusBadRequest, "quantity_change must be non-zero")
		return
	}

	input := &dto.AdjustInventoryInput{
		MerchantID:     merchantID,
		StoreID:        req.StoreID,
		ProductID:      req.ProductID,
		VariantID:      req.VariantID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceID:    req.ReferenceID,
		ReferenceType:  "manual_adjustment",
		UserID:         auth.GetUserID(r.Context()),
	}

	inv, err := h.uc.AdjustInventory(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, inventoryResponse{Inventory: inv})
}

func (h *InventoryHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req transferRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		httputil.Error(w, http.StatusBadRequest, "product_id and positive quantity are required")
		return
	}

	input := &dto.TransferInventoryInput{
		MerchantID:    merchantID,
		SourceStoreID: req.SourceStoreID,
		TargetStoreID: req.TargetStoreID,
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		Quantity:      req.Quantity,
		Reason:        req.Reason,
		UserID:        auth.GetUserID(r.Context()),
	}

	if err := h.uc.TransferInventory(r.Context(), input); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	filters := &dto.MovementFilters{
		MerchantID:   merchantID,
		ProductID:    q.Get("product_id"),
		StoreID:      storeIDParam(r),
		MovementType: q.Get("movement_type"),
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if filters.Page < 1 {
		filters.Page = 1
	}

	movements, total, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if movements == nil {
		movements = []model.InventoryMovement{}
	}

	httputil.JSON(w, http.StatusOK, movementListResponse{Movements: movements, Total: total})
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, inventory.ErrLockContention):
		httputil.Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("inventory handler failure", zap.Error(err))
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
