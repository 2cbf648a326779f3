package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/customer"
	"github.com/nivapos/catalog-service/internal/customer/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type CustomerHandler struct {
	uc     customer.UseCase
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CustomerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/customers", h.Create)
	mux.HandleFunc("GET /v1/customers", h.List)
	mux.HandleFunc("GET /v1/customers/{id}", h.Get)
	mux.HandleFunc("PUT /v1/customers/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/customers/{id}", h.Delete)
	mux.HandleFunc("POST /v1/customers/{id}/loyalty", h.AdjustLoyalty)
}

type customerResponse struct {
	Customer *model.Customer `json:"customer"`
}

type customerListResponse struct {
	Customers []model.Customer `json:"customers"`
	Total     int              `json:"total"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.CreateCustomerInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	input.MerchantID = merchantID

	c, err := h.uc.CreateCustomer(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, customerResponse{Customer: c})
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	c, err := h.uc.GetCustomer(r.Context(), merchantID, r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, customerResponse{Customer: c})
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	filters := &dto.CustomerFilters{
		MerchantID:  merchantID,
		SearchQuery: q.Get("q"),
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

	customers, total, err := h.uc.ListCustomers(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}

	httputil.JSON(w, http.StatusOK, customerListResponse{Customers: customers, Total: total})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.UpdateCustomerInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	input.ID = r.PathValue("id")
	input.MerchantID = merchantID

	c, err := h.uc.UpdateCustomer(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, customerResponse{Customer: c})
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	if err := h.uc.DeleteCustomer(r.Context(), merchantID, r.PathValue("id")); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) AdjustLoyalty(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.AdjustLoyaltyInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Delta == 0 {
		httputil.Error(w, http.StatusBadRequest, "delta must be non-zero")
		return
	}
	input.CustomerID = r.PathValue("id")
	input.MerchantID = merchantID

	c, err := h.uc.AdjustLoyalty(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, customerResponse{Customer: c})
}

func (h *CustomerHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, customer.ErrInsufficientPoints):
		httputil.Error(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("customer handler failure", zap.Error(err))
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
