package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/validate"
)

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	account, code, err := validate.ConnectRequestValidate(r)
	if err != nil {
		badRequest(w, code, err)
		return
	}

	resync := s.svc.Connect(r.Context(), account)
	s.logger.Info("connection updated", zap.String("account", account), zap.Bool("resync", resync))

	s.writeJSON(w, http.StatusAccepted, dto.ConnectResponse{Resync: resync})
}
