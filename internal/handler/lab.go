package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/calc"
	"github.com/BuzzLyutic/lab-utils/internal/crawler"
	"github.com/BuzzLyutic/lab-utils/internal/fib"
	"github.com/BuzzLyutic/lab-utils/internal/model"
	"github.com/BuzzLyutic/lab-utils/internal/shell"
	"github.com/BuzzLyutic/lab-utils/pkg/respond"
)

// LabHandler exposes the standalone utilities over HTTP.
type LabHandler struct {
	memo    *fib.Memo
	runner  *shell.Runner
	crawler *crawler.Client
	logger  *zap.Logger
}

func NewLabHandler(memo *fib.Memo, runner *shell.Runner, crawler *crawler.Client, logger *zap.Logger) *LabHandler {
	return &LabHandler{
		memo:    memo,
		runner:  runner,
		crawler: crawler,
		logger:  logger,
	}
}

type sumRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type divideRequest struct {
	Numerator   float64  `json:"numerator"`
	Denominator *float64 `json:"denominator"`
}

type averageRequest struct {
	Numbers interface{} `json:"numbers"`
}

type echoRequest struct {
	Text string `json:"text"`
}

type titlesRequest struct {
	URL string `json:"url"`
}

type downloadRequest struct {
	URLs []string `json:"urls"`
}

type resultResponse struct {
	Result interface{} `json:"result"`
}

func (h *LabHandler) Sum(w http.ResponseWriter, r *http.Request) {
	var req sumRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeResult(w, r, calc.Sum(req.A, req.B), nil)
}

func (h *LabHandler) Divide(w http.ResponseWriter, r *http.Request) {
	var req divideRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Denominator == nil {
		respond.Error(w, r, http.StatusBadRequest, "denominator is required")
		return
	}

	result, err := calc.Divide(req.Numerator, *req.Denominator)
	h.writeResult(w, r, result, err)
}

func (h *LabHandler) Average(w http.ResponseWriter, r *http.Request) {
	var req averageRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := calc.AverageOf(req.Numbers)
	h.writeResult(w, r, result, err)
}

func (h *LabHandler) Fibonacci(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "n must be an integer")
		return
	}

	result, err := h.memo.Get(n)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]interface{}{"n": n, "result": result})
}

func (h *LabHandler) Echo(w http.ResponseWriter, r *http.Request) {
	var req echoRequest
	if !h.decode(w, r, &req) {
		return
	}

	out, err := h.runner.Echo(r.Context(), req.Text)
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"output": out})
}

func (h *LabHandler) EmptyTask(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, model.NewEmptyTask())
}

func (h *LabHandler) Titles(w http.ResponseWriter, r *http.Request) {
	var req titlesRequest
	if !h.decode(w, r, &req) {
		return
	}
	titles := h.crawler.FetchTitles(r.Context(), strings.TrimSpace(req.URL))
	respond.JSON(w, r, http.StatusOK, map[string][]string{"titles": titles})
}

// Download runs synchronously; the response arrives after every url has
// been fetched, one politeness delay apart. A malformed url only nulls its
// own entry.
func (h *LabHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if !h.decode(w, r, &req) {
		return
	}
	results := h.crawler.Download(r.Context(), req.URLs)
	respond.JSON(w, r, http.StatusOK, map[string][]*string{"results": results})
}

// writeResult rejects infinities and NaN, which JSON cannot carry.
func (h *LabHandler) writeResult(w http.ResponseWriter, r *http.Request, result float64, err error) {
	if err == nil {
		result, err = calc.Finite(result)
	}
	if err != nil {
		handleErrors(h.logger, w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, resultResponse{Result: result})
}

func (h *LabHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := respond.Decode(w, r, v); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
