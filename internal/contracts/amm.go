package contracts

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/amm-dapp-connector/internal/ammmath"
	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/wallet"
)

// AMM is the automated market maker handle.
type AMM struct {
	*BoundContract
}

// NewAMM binds the AMM contract.
func NewAMM(desc Descriptor, backend wallet.Backend, signer *wallet.Signer, callTimeout time.Duration) (*AMM, error) {
	bc, err := Bind(desc, backend, signer, callTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "Bind")
	}
	return &AMM{BoundContract: bc}, nil
}

// Precision returns the share precision constant.
func (a *AMM) Precision(ctx context.Context) (*big.Int, error) {
	return a.callBig(ctx, "PRECISION")
}

// TotalShares returns the shares minted across all providers.
func (a *AMM) TotalShares(ctx context.Context) (*big.Int, error) {
	return a.callBig(ctx, "totalShares")
}

// Share returns the shares held by account.
func (a *AMM) Share(ctx context.Context, account common.Address) (*big.Int, error) {
	return a.callBig(ctx, "share", account)
}

// TotalAmount returns the pool balance of token.
func (a *AMM) TotalAmount(ctx context.Context, token common.Address) (*big.Int, error) {
	return a.callBig(ctx, "totalAmount", token)
}

// PoolTokens returns token0 and token1 of the pool.
func (a *AMM) PoolTokens(ctx context.Context) (common.Address, common.Address, error) {
	const (
		numTokens    = 2
		token0Method = "token0"
		token1Method = "token1"
	)

	type tokenResult struct {
		token common.Address
		err   error
		name  string
	}

	var wg sync.WaitGroup
	ch := make(chan tokenResult, numTokens)

	getToken := func(method string) {
		defer wg.Done()

		addr, err := a.callAddress(ctx, method)
		if err != nil {
			ch <- tokenResult{err: errors.Wrapf(err, "failed to call %s", method)}
			return
		}
		ch <- tokenResult{token: addr, name: method}
	}

	wg.Add(numTokens)
	go getToken(token0Method)
	go getToken(token1Method)

	go func() {
		wg.Wait()
		close(ch)
	}()

	var (
		token0, token1 common.Address
		combinedErr    error
	)

	for result := range ch {
		if result.err != nil {
			combinedErr = multierr.Append(combinedErr, result.err)
			continue
		}

		switch result.name {
		case token0Method:
			token0 = result.token
		case token1Method:
			token1 = result.token
		}
	}

	if combinedErr != nil {
		return common.Address{}, common.Address{}, errors.Wrap(combinedErr, "failed to get pool tokens")
	}
	return token0, token1, nil
}

// counterpart returns the pool token paired with token.
func (a *AMM) counterpart(ctx context.Context, token common.Address) (common.Address, error) {
	token0, token1, err := a.PoolTokens(ctx)
	if err != nil {
		return common.Address{}, err
	}
	switch token {
	case token0:
		return token1, nil
	case token1:
		return token0, nil
	default:
		return common.Address{}, errors.Wrapf(apperrors.ErrInvalidArgument, "token %s is not from pool", token.Hex())
	}
}

// pair checks that tokenIn and tokenOut are the two tokens of the pool.
func (a *AMM) pair(ctx context.Context, tokenIn, tokenOut common.Address) error {
	if tokenIn == tokenOut {
		return errors.Wrap(apperrors.ErrInvalidArgument, "token in and token out are the same")
	}
	other, err := a.counterpart(ctx, tokenIn)
	if err != nil {
		return err
	}
	if other != tokenOut {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "token %s is not from pool", tokenOut.Hex())
	}
	return nil
}

// EstimateSwapOut computes off-chain how much tokenOut a swap of amountIn
// tokenIn would return at the current pool state.
func (a *AMM) EstimateSwapOut(ctx context.Context, tokenIn, tokenOut common.Address, amountIn *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amount in must be positive")
	}
	if err := a.pair(ctx, tokenIn, tokenOut); err != nil {
		return nil, err
	}

	totalIn, totalOut, err := a.totals(ctx, tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}

	out, ok := ammmath.SwapOut(amountIn, totalIn, totalOut)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return out, nil
}

// EstimateSwapIn computes off-chain how much tokenIn a swap needs to return
// amountOut of tokenOut.
func (a *AMM) EstimateSwapIn(ctx context.Context, tokenIn, tokenOut common.Address, amountOut *big.Int) (*big.Int, error) {
	if amountOut == nil || amountOut.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amount out must be positive")
	}
	if err := a.pair(ctx, tokenIn, tokenOut); err != nil {
		return nil, err
	}

	totalIn, totalOut, err := a.totals(ctx, tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}

	in, ok := ammmath.SwapIn(amountOut, totalIn, totalOut)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return in, nil
}

// EstimateEquivalent computes how much of the paired token must accompany
// amountIn of tokenIn when providing liquidity.
func (a *AMM) EstimateEquivalent(ctx context.Context, tokenIn common.Address, amountIn *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amount in must be positive")
	}

	other, err := a.counterpart(ctx, tokenIn)
	if err != nil {
		return nil, err
	}

	totalIn, totalOut, err := a.totals(ctx, tokenIn, other)
	if err != nil {
		return nil, err
	}

	out, ok := ammmath.Equivalent(amountIn, totalIn, totalOut)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return out, nil
}

// EstimateProvideShares computes how many shares providing amount of token
// would mint. An empty pool mints a fixed 100 * PRECISION.
func (a *AMM) EstimateProvideShares(ctx context.Context, token common.Address, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amount must be positive")
	}
	if _, err := a.counterpart(ctx, token); err != nil {
		return nil, err
	}

	precision, err := a.Precision(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "a.Precision")
	}
	shares, err := a.TotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "a.TotalShares")
	}
	total, err := a.TotalAmount(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "a.TotalAmount")
	}

	out, ok := ammmath.ProvideShares(amount, total, shares, precision)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return out, nil
}

// EstimateWithdraw computes how much of token burning share would pay out.
func (a *AMM) EstimateWithdraw(ctx context.Context, token common.Address, share *big.Int) (*big.Int, error) {
	if share == nil || share.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "share must be positive")
	}
	if _, err := a.counterpart(ctx, token); err != nil {
		return nil, err
	}

	total, err := a.TotalAmount(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "a.TotalAmount")
	}
	shares, err := a.TotalShares(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "a.TotalShares")
	}

	if shares != nil && share.Cmp(shares) > 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "share exceeds pool shares")
	}

	out, ok := ammmath.WithdrawAmount(share, total, shares)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return out, nil
}

func (a *AMM) totals(ctx context.Context, tokenIn, tokenOut common.Address) (*big.Int, *big.Int, error) {
	totalIn, err := a.TotalAmount(ctx, tokenIn)
	if err != nil {
		return nil, nil, errors.Wrap(err, "a.TotalAmount in")
	}
	totalOut, err := a.TotalAmount(ctx, tokenOut)
	if err != nil {
		return nil, nil, errors.Wrap(err, "a.TotalAmount out")
	}
	return totalIn, totalOut, nil
}

// Provide deposits both pool tokens from the signer account.
func (a *AMM) Provide(
	ctx context.Context,
	tokenX common.Address, amountX *big.Int,
	tokenY common.Address, amountY *big.Int,
) (*types.Transaction, error) {
	if amountX == nil || amountX.Sign() <= 0 || amountY == nil || amountY.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "provided amounts must be positive")
	}
	return a.transact(ctx, "provide", tokenX, amountX, tokenY, amountY)
}

// Withdraw burns share of the signer account.
func (a *AMM) Withdraw(ctx context.Context, share *big.Int) (*types.Transaction, error) {
	if share == nil || share.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "share must be positive")
	}
	return a.transact(ctx, "withdraw", share)
}

// Swap exchanges amountIn of tokenIn for tokenOut.
func (a *AMM) Swap(ctx context.Context, tokenIn, tokenOut common.Address, amountIn *big.Int) (*types.Transaction, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amount in must be positive")
	}
	if tokenIn == tokenOut {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "token in and token out are the same")
	}
	return a.transact(ctx, "swap", tokenIn, tokenOut, amountIn)
}
