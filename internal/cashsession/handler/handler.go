package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/cashsession"
	"github.com/nivapos/catalog-service/internal/cashsession/dto"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type CashSessionHandler struct {
	uc     cashsession.UseCase
	logger logger.ZapLogger
}

func NewCashSessionHandler(uc cashsession.UseCase, log logger.ZapLogger) *CashSessionHandler {
	return &CashSessionHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CashSessionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/cash-sessions", h.Open)
	mux.HandleFunc("GET /v1/cash-sessions", h.List)
	mux.HandleFunc("GET /v1/cash-sessions/{id}", h.Get)
	mux.HandleFunc("POST /v1/cash-sessions/{id}/movements", h.RecordMovement)
	mux.HandleFunc("GET /v1/cash-sessions/{id}/movements", h.ListMovements)
	mux.HandleFunc("POST /v1/cash-sessions/{id}/close", h.Close)
}

type sessionResponse struct {
	Session *model.CashSession `json:"session"`
}

type sessionListResponse struct {
	Sessions []model.CashSession `json:"sessions"`
	Total    int                 `json:"total"`
}

type cashMovementResponse struct {
	Movement *model.CashMovement `json:"movement"`
}

type cashMovementListResponse struct {
	Movements []model.CashMovement `json:"movements"`
}

func (h *CashSessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.OpenSessionInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.RegisterID == "" {
		httputil.Error(w, http.StatusBadRequest, "register_id is required")
		return
	}
	if input.OpeningFloat < 0 {
		httputil.Error(w, http.StatusBadRequest, "opening_float must not be negative")
		return
	}
	input.MerchantID = merchantID
	input.OpenedBy = auth.GetUserID(r.Context())

	s, err := h.uc.OpenSession(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, sessionResponse{Session: s})
}

func (h *CashSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	s, err := h.uc.GetSession(r.Context(), merchantID, r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, sessionResponse{Session: s})
}

func (h *CashSessionHandler) List(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	filters := &dto.SessionFilters{
		MerchantID: merchantID,
		RegisterID: q.Get("register_id"),
		Status:     q.Get("status"),
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if filters.Page < 1 {
		filters.Page = 1
	}

	sessions, total, err := h.uc.ListSessions(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if sessions == nil {
		sessions = []model.CashSession{}
	}

	httputil.JSON(w, http.StatusOK, sessionListResponse{Sessions: sessions, Total: total})
}

func (h *CashSessionHandler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.RecordMovementInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Amount <= 0 {
		httputil.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	input.SessionID = r.PathValue("id")
	input.MerchantID = merchantID
	input.CreatedBy = auth.GetUserID(r.Context())

	m, err := h.uc.RecordMovement(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, cashMovementResponse{Movement: m})
}

func (h *CashSessionHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	movements, err := h.uc.ListMovements(r.Context(), merchantID, r.PathValue("id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if movements == nil {
		movements = []model.CashMovement{}
	}

	httputil.JSON(w, http.StatusOK, cashMovementListResponse{Movements: movements})
}

func (h *CashSessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.CloseSessionInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.CountedCash < 0 {
		httputil.Error(w, http.StatusBadRequest, "counted_cash must not be negative")
		return
	}
	input.SessionID = r.PathValue("id")
	input.MerchantID = merchantID

	s, err := h.uc.CloseSession(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, sessionResponse{Session: s})
}

func (h *CashSessionHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cashsession.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cashsession.ErrSessionClosed), errors.Is(err, cashsession.ErrRegisterBusy):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, cashsession.ErrInvalidMovement):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("cash session handler failure", zap.Error(err))
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
