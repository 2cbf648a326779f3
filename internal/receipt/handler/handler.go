package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
	"github.com/nivapos/catalog-service/internal/receipt"
	"github.com/nivapos/catalog-service/internal/receipt/dto"
)

type ReceiptHandler struct {
	uc     receipt.UseCase
	logger logger.ZapLogger
}

func NewReceiptHandler(uc receipt.UseCase, log logger.ZapLogger) *ReceiptHandler {
	return &ReceiptHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReceiptHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/receipt-template", h.Get)
	mux.HandleFunc("PUT /v1/receipt-template", h.Update)
	mux.HandleFunc("POST /v1/receipt-template/preview", h.Preview)
}

type templateResponse struct {
	Template *model.ReceiptTemplate `json:"template"`
}

type previewResponse struct {
	Preview string `json:"preview"`
}

func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	t, err := h.uc.GetEffective(r.Context(), merchantID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, templateResponse{Template: t})
}

func (h *ReceiptHandler) Update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.UpdateTemplateInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if input.PaperWidth <= 0 {
		httputil.Error(w, http.StatusBadRequest, "paper_width must be positive")
		return
	}
	input.MerchantID = merchantID

	t, err := h.uc.Update(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, templateResponse{Template: t})
}

func (h *ReceiptHandler) Preview(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var sale dto.PreviewSale
	if err := httputil.Decode(r, &sale); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rendered, err := h.uc.Preview(r.Context(), merchantID, &sale)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, previewResponse{Preview: rendered})
}

func (h *ReceiptHandler) respondError(w http.ResponseWriter, err error) {
	h.logger.Error("receipt handler failure", zap.Error(err))
	httputil.Error(w, http.StatusInternalServerError, "internal error")
}
