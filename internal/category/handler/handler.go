package handler

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/category"
	"github.com/nivapos/catalog-service/internal/category/dto"
	"github.com/nivapos/catalog-service/internal/hierarchy"
	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/categories", h.Create)
	mux.HandleFunc("GET /v1/categories", h.List)
	mux.HandleFunc("GET /v1/categories/tree", h.Tree)
	mux.HandleFunc("GET /v1/categories/options", h.Options)
	mux.HandleFunc("GET /v1/categories/{id}", h.Get)
	mux.HandleFunc("GET /v1/categories/{id}/breadcrumb", h.Breadcrumb)
	mux.HandleFunc("PUT /v1/categories/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/categories/{id}", h.Delete)
}

type categoryResponse struct {
	Category *model.Category `json:"category"`
}

type categoryListResponse struct {
	Categories []model.Category `json:"categories"`
	Total      int              `json:"total"`
}

type treeResponse struct {
	Roots []*hierarchy.Node `json:"roots"`
}

type breadcrumbResponse struct {
	Path []*hierarchy.Node `json:"path"`
}

type optionsResponse struct {
	Options []hierarchy.Option `json:"options"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var input dto.CreateCategoryInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	input.MerchantID = merchantID

	cat, err := h.uc.CreateCategory(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, categoryResponse{Category: cat})
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cat, err := h.uc.GetCategory(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	// Cross-merchant ids must look absent, not forbidden.
	if cat == nil || cat.MerchantID != auth.GetMerchantID(r.Context()) {
		httputil.Error(w, http.StatusNotFound, "category not found")
		return
	}

	httputil.JSON(w, http.StatusOK, categoryResponse{Category: cat})
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	q := r.URL.Query()
	filters := &dto.CategoryFilters{
		MerchantID: merchantID,
		RootsOnly:  q.Get("roots") == "true",
	}
	if v := q.Get("parent_id"); v != "" {
		parentID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, "invalid parent_id")
			return
		}
		filters.ParentID = &parentID
	}
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	cats, total, err := h.uc.ListCategories(r.Context(), filters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}

	httputil.JSON(w, http.StatusOK, categoryListResponse{Categories: cats, Total: total})
}

func (h *CategoryHandler) Tree(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	roots, err := h.uc.GetTree(r.Context(), merchantID, r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if roots == nil {
		roots = []*hierarchy.Node{}
	}

	httputil.JSON(w, http.StatusOK, treeResponse{Roots: roots})
}

func (h *CategoryHandler) Breadcrumb(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	path, err := h.uc.GetBreadcrumb(r.Context(), merchantID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if path == nil {
		path = []*hierarchy.Node{}
	}

	httputil.JSON(w, http.StatusOK, breadcrumbResponse{Path: path})
}

func (h *CategoryHandler) Options(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	opts, err := h.uc.ListOptions(r.Context(), merchantID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if opts == nil {
		opts = []hierarchy.Option{}
	}

	httputil.JSON(w, http.StatusOK, optionsResponse{Options: opts})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input dto.UpdateCategoryInput
	if err := httputil.Decode(r, &input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	input.ID = id
	input.MerchantID = merchantID

	cat, err := h.uc.UpdateCategory(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, categoryResponse{Category: cat})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.uc.DeleteCategory(r.Context(), merchantID, id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid category id")
		return 0, false
	}
	return id, true
}

func (h *CategoryHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, category.ErrNotFound):
		httputil.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, category.ErrParentNotFound), errors.Is(err, category.ErrInvalidParent):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("category handler failure", zap.Error(err))
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
