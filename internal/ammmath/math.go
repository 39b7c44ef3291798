package ammmath

import (
	"math/big"
	"sync"
)

var (
	// Swap fee: 0.3%, applied to the input amount.
	feeMul = big.NewInt(997)
	feeDen = big.NewInt(1000)

	// First liquidity provider is minted 100 * PRECISION shares.
	initialShares = big.NewInt(100)

	scratchPool = sync.Pool{
		New: func() any {
			return &scratch{
				a: new(big.Int),
				b: new(big.Int),
				c: new(big.Int),
			}
		},
	}
)

type scratch struct {
	a *big.Int
	b *big.Int
	c *big.Int
}

func positive(xs ...*big.Int) bool {
	for _, x := range xs {
		if x == nil || x.Sign() <= 0 {
			return false
		}
	}
	return true
}

// SwapOutInto writes into out the amount of tokenOut received for amountIn of
// tokenIn, given the pool totals of both tokens:
//
//	out = totalOut * amountIn*997 / (totalIn*1000 + amountIn*997)
//
// It returns false, leaving out at zero, when any input is not positive.
// Temporaries come from a pool so a warm call does not allocate.
func SwapOutInto(out, amountIn, totalIn, totalOut *big.Int) bool {
	if out == nil {
		return false
	}
	if !positive(amountIn, totalIn, totalOut) {
		out.SetInt64(0)
		return false
	}

	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	s.a.Mul(amountIn, feeMul)
	s.b.Mul(s.a, totalOut)
	s.c.Mul(totalIn, feeDen)
	s.c.Add(s.c, s.a)

	out.Quo(s.b, s.c)
	return true
}

// SwapOut is the allocating form of SwapOutInto.
func SwapOut(amountIn, totalIn, totalOut *big.Int) (*big.Int, bool) {
	out := new(big.Int)
	ok := SwapOutInto(out, amountIn, totalIn, totalOut)
	return out, ok
}

// SwapIn returns the amount of tokenIn needed to receive amountOut of tokenOut.
// It returns false when amountOut cannot be served by the pool.
func SwapIn(amountOut, totalIn, totalOut *big.Int) (*big.Int, bool) {
	if !positive(amountOut, totalIn, totalOut) || amountOut.Cmp(totalOut) >= 0 {
		return new(big.Int), false
	}

	num := new(big.Int).Mul(totalIn, amountOut)
	num.Mul(num, feeDen)
	den := new(big.Int).Sub(totalOut, amountOut)
	den.Mul(den, feeMul)

	in := num.Quo(num, den)
	return in.Add(in, big.NewInt(1)), true
}

// Equivalent returns how much of the other token must accompany amountIn
// when providing liquidity, keeping the pool ratio.
func Equivalent(amountIn, totalIn, totalOut *big.Int) (*big.Int, bool) {
	if !positive(amountIn, totalIn, totalOut) {
		return new(big.Int), false
	}
	out := new(big.Int).Mul(amountIn, totalOut)
	return out.Quo(out, totalIn), true
}

// WithdrawAmount returns the amount of a token paid out for burning share.
func WithdrawAmount(share, totalToken, totalShares *big.Int) (*big.Int, bool) {
	if !positive(share, totalToken, totalShares) || share.Cmp(totalShares) > 0 {
		return new(big.Int), false
	}
	out := new(big.Int).Mul(share, totalToken)
	return out.Quo(out, totalShares), true
}

// ProvideShares returns the shares minted for providing amount of a token
// whose pool total is total. An empty pool mints 100 * precision.
func ProvideShares(amount, total, totalShares, precision *big.Int) (*big.Int, bool) {
	if totalShares == nil || totalShares.Sign() == 0 {
		if !positive(precision) {
			return new(big.Int), false
		}
		return new(big.Int).Mul(initialShares, precision), true
	}
	if !positive(amount, total, totalShares) {
		return new(big.Int), false
	}
	out := new(big.Int).Mul(amount, totalShares)
	return out.Quo(out, total), true
}
