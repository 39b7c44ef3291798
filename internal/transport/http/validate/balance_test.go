package validate

import (
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
)

func TestBalanceRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		params         map[string]string
		expectedStatus int
		wantToken      contracts.TokenKind
		wantAccount    common.Address
		wantErr        assert.ErrorAssertionFunc
	}{
		{
			name:        "token and account",
			method:      http.MethodGet,
			params:      map[string]string{"token": "joe", "account": tokenIn},
			wantToken:   contracts.JOE,
			wantAccount: common.HexToAddress(tokenIn),
			wantErr:     assert.NoError,
		},
		{
			name:      "connected account",
			method:    http.MethodGet,
			params:    map[string]string{"token": "usdc"},
			wantToken: contracts.USDC,
			wantErr:   assert.NoError,
		},
		{
			name:           "missing token",
			method:         http.MethodGet,
			expectedStatus: http.StatusBadRequest,
			wantErr:        assert.Error,
		},
		{
			name:           "bad account",
			method:         http.MethodGet,
			params:         map[string]string{"token": "usdc", "account": "0xABC"},
			expectedStatus: http.StatusBadRequest,
			wantErr:        assert.Error,
		},
		{
			name:           "wrong http method",
			method:         http.MethodPost,
			params:         map[string]string{"token": "usdc"},
			expectedStatus: http.StatusMethodNotAllowed,
			wantErr:        assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, status, err := BalanceRequestValidate(newRequest(tt.method, "/balance", tt.params))
			tt.wantErr(t, err)
			require.Equal(t, tt.expectedStatus, status)
			if err != nil {
				require.Nil(t, req)
				return
			}
			require.Equal(t, tt.wantToken, req.Token)
			require.Equal(t, tt.wantAccount, req.Account)
		})
	}
}

func TestPositionRequestValidate(t *testing.T) {
	t.Parallel()

	account, status, err := PositionRequestValidate(newRequest(http.MethodGet, "/position", map[string]string{"account": tokenOut}))
	require.NoError(t, err)
	require.Zero(t, status)
	require.Equal(t, common.HexToAddress(tokenOut), account)

	account, _, err = PositionRequestValidate(newRequest(http.MethodGet, "/position", nil))
	require.NoError(t, err)
	require.Equal(t, common.Address{}, account)

	_, status, err = PositionRequestValidate(newRequest(http.MethodPut, "/position", nil))
	require.Error(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, status)
}
