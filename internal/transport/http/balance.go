package http

import (
	"net/http"

	servicedto "github.com/fleshka4/amm-dapp-connector/internal/service/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/transport/http/validate"
)

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.BalanceRequestValidate(r)
	if err != nil {
		badRequest(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	b, err := s.svc.Balance(ctx, servicedto.BalanceRequest{Token: req.Token, Account: req.Account})
	if err != nil {
		s.writeError(w, "balance", err)
		return
	}

	resp := dto.BalanceResponse{
		Account:  b.Account.Hex(),
		Token:    b.Token.Hex(),
		Symbol:   b.Symbol,
		Decimals: b.Decimals,
		Balance:  b.Balance.String(),
	}
	if b.Allowance != nil {
		allowance := b.Allowance.String()
		resp.Allowance = &allowance
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	account, code, err := validate.PositionRequestValidate(r)
	if err != nil {
		badRequest(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	p, err := s.svc.Position(ctx, account)
	if err != nil {
		s.writeError(w, "position", err)
		return
	}

	s.writeJSON(w, http.StatusOK, dto.PositionResponse{
		Account:     p.Account.Hex(),
		Share:       p.Share.String(),
		TotalShares: p.TotalShares.String(),
		Token0:      p.Token0.Hex(),
		Token1:      p.Token1.Hex(),
		Amount0:     p.Amount0.String(),
		Amount1:     p.Amount1.String(),
	})
}
