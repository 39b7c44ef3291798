package http

import (
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
)

// writeError maps a service error to its HTTP status.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInsufficientLiquidity), errors.Is(err, apperrors.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrNotReady):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, apperrors.ErrContractRead), errors.Is(err, apperrors.ErrTxFailed):
		s.logger.Warn(op+" failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		s.logger.Error(op+" failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func badRequest(w http.ResponseWriter, code int, err error) {
	if code == 0 {
		code = http.StatusBadRequest
	}
	http.Error(w, err.Error(), code)
}
