package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/validate"
)

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.EstimateRequestValidate(r)
	if err != nil {
		badRequest(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.Estimate(ctx, dto.EstimateRequest{
		Kind:     dto.EstimateKind(req.Kind),
		TokenIn:  req.TokenIn,
		TokenOut: req.TokenOut,
		Amount:   req.Amount,
	})
	if err != nil {
		s.writeError(w, "estimate", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out.String())); err != nil {
		s.logger.Warn("estimate write error", zap.Error(err))
	}
}
