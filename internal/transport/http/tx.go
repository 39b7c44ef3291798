package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/validate"
)

func (s *Server) handleTx(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.TxRequestValidate(r)
	if err != nil {
		badRequest(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	tx, err := s.svc.Submit(ctx, *req)
	if err != nil {
		s.writeError(w, "tx", err)
		return
	}

	s.logger.Info("transaction sent",
		zap.String("op", string(req.Op)),
		zap.String("hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()),
	)

	resp := dto.TxResponse{Hash: tx.Hash().Hex(), Nonce: tx.Nonce()}
	if to := tx.To(); to != nil {
		resp.To = to.Hex()
	}
	s.writeJSON(w, http.StatusAccepted, resp)
}
