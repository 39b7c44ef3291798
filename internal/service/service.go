package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/fleshka4/amm-dapp-connector/internal/connector"
	"github.com/fleshka4/amm-dapp-connector/internal/service/dto"
	"github.com/fleshka4/amm-dapp-connector/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// Service represents interface for business logic.
type Service interface {
	Connect(ctx context.Context, account string) bool
	State() connector.State
	Estimate(ctx context.Context, req dto.EstimateRequest) (*big.Int, error)
	Balance(ctx context.Context, req dto.BalanceRequest) (*dto.Balance, error)
	Position(ctx context.Context, account common.Address) (*dto.Position, error)
	Submit(ctx context.Context, req dto.TxRequest) (*types.Transaction, error)
}

// Connector keeps contract handles in sync with a connection.
// *connector.Connector satisfies it.
type Connector interface {
	Update(ctx context.Context, conn connector.Connection) bool
	State() connector.State
}

// DappService binds one wallet provider to one connector.
type DappService struct {
	provider wallet.Provider
	conn     Connector
}

// NewDappService creates DappService. A nil provider means no wallet is
// available; handles then stay unset.
func NewDappService(provider wallet.Provider, conn Connector) *DappService {
	return &DappService{
		provider: provider,
		conn:     conn,
	}
}

// Connect selects account. An empty account disconnects. It reports whether
// a new sync cycle was started.
func (s *DappService) Connect(ctx context.Context, account string) bool {
	return s.conn.Update(ctx, connector.Connection{
		Account:  account,
		Provider: s.provider,
	})
}

// State returns the current contract handles.
func (s *DappService) State() connector.State {
	return s.conn.State()
}
