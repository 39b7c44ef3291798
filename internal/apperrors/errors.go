package apperrors

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientLiquidity is returned when the pool does not have enough
	// reserves to satisfy the requested swap.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrNoProvider is returned when no wallet provider is available.
	ErrNoProvider = errors.New("wallet provider doesn't exist")

	// ErrNoAccount is returned when no account is selected or the wallet
	// provider has no accounts to sign with.
	ErrNoAccount = errors.New("account doesn't exist")

	// ErrContractRead is returned when a read-only contract call fails,
	// typically due to an RPC or ABI decoding error.
	ErrContractRead = errors.New("contract read failed")

	// ErrNotReady is returned when the requested contract handle has not
	// been populated yet.
	ErrNotReady = errors.New("contract handle not ready")
)

// ErrTxFailed is returned when a transaction could not be built, signed or sent.
var ErrTxFailed = errors.New("transaction failed")

// Error pairs a sentinel with the failure that caused it, so both match
// errors.Is.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// Wrap returns an *Error for a failed op. It returns nil when err is nil.
func Wrap(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the sentinel and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
