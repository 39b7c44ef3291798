package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/connector"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/dto"
)

// NewStateResponse converts a connector snapshot to its wire form.
func NewStateResponse(st connector.State) dto.StateResponse {
	resp := dto.StateResponse{Syncing: st.Syncing}
	if st.USDC != nil {
		resp.USDC = &dto.TokenState{Symbol: st.USDC.Symbol, Address: st.USDC.Contract.Address().Hex()}
	}
	if st.JOE != nil {
		resp.JOE = &dto.TokenState{Symbol: st.JOE.Symbol, Address: st.JOE.Contract.Address().Hex()}
	}
	if st.AMM != nil {
		resp.AMM = &dto.AMMState{
			SharePrecision: st.AMM.SharePrecision.String(),
			Address:        st.AMM.Contract.Address().Hex(),
		}
	}
	return resp
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, NewStateResponse(s.svc.State()))
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("json write error", zap.Error(err))
	}
}
