package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/model"
	"github.com/BuzzLyutic/lab-utils/internal/service"
	"github.com/BuzzLyutic/lab-utils/pkg/respond"
)

type PageHandler struct {
	service *service.PageService
	logger  *zap.Logger
}

func NewPageHandler(srv *service.PageService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *PageHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	pages, err := h.service.Enqueue(r.Context(), req.URLs)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}

	if len(pages) == 1 {
		w.Header().Set("Location", fmt.Sprintf("/api/pages/%d", pages[0].ID))
	}
	respond.JSON(w, r, http.StatusCreated, pages)
}

func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	page, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, page)
}

func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.PageFilter
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	pages, err := h.service.List(r.Context(), filter, limit)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, pages)
}

func (h *PageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}
