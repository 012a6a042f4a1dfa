package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/lab-utils/internal/calc"
	"github.com/BuzzLyutic/lab-utils/internal/fib"
	"github.com/BuzzLyutic/lab-utils/internal/repo"
	"github.com/BuzzLyutic/lab-utils/internal/service"
	"github.com/BuzzLyutic/lab-utils/internal/shell"
	"github.com/BuzzLyutic/lab-utils/pkg/respond"
)

func handleErrors(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, calc.ErrNotSequence):
		respond.Error(w, r, http.StatusBadRequest, "type error")
	case errors.Is(err, calc.ErrNotFinite):
		respond.Error(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, calc.ErrDivisionByZero),
		errors.Is(err, fib.ErrNegative),
		errors.Is(err, fib.ErrOverflow),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, respond.ErrEmptyBody):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, shell.ErrTimeout):
		respond.Error(w, r, http.StatusGatewayTimeout, "command timed out")
	case errors.Is(err, shell.ErrExecution):
		logger.Error("command failed", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "command failed")
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
