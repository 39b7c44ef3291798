// Package connector keeps typed handles to the dApp contracts in sync with the
// connected wallet provider and account.
package connector

import (
	"context"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
	"github.com/fleshka4/amm-dapp-connector/internal/contracts"
	"github.com/fleshka4/amm-dapp-connector/internal/wallet"
)

// Connection is the externally supplied context the handles are derived from.
// A nil Provider means no wallet is available; an empty Account means no
// account is selected.
//
// Providers are compared by identity, so they should be pointers. A provider
// of a non-comparable type never equals the previous one and always resyncs.
type Connection struct {
	Account  string
	Provider wallet.Provider
}

func (c Connection) equal(other Connection) bool {
	return c.Account == other.Account && sameProvider(c.Provider, other.Provider)
}

func sameProvider(a, b wallet.Provider) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// TokenHandle is a bound token contract together with its symbol.
type TokenHandle struct {
	Symbol   string
	Contract contracts.Token
}

// AMMHandle is the bound AMM contract together with its share precision.
type AMMHandle struct {
	SharePrecision *big.Int
	Contract       *contracts.AMM
}

// State is a snapshot of the handles. A nil field is not populated.
type State struct {
	USDC *TokenHandle
	JOE  *TokenHandle
	AMM  *AMMHandle

	// Syncing reports whether a cycle is still in flight.
	Syncing bool
}

// Option configures a Connector.
type Option func(*Connector)

// WithCallTimeout bounds every contract read. Zero disables the timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Connector) {
		c.callTimeout = d
	}
}

type cycle struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Connector derives contract handles from a Connection.
//
// Every change of the connection starts a cycle that acquires and reads the
// three contracts concurrently. A newer cycle cancels the previous one, and
// results of a superseded cycle are discarded. Handles of earlier cycles stay
// visible until overwritten.
type Connector struct {
	logger      *zap.Logger
	set         contracts.Set
	callTimeout time.Duration

	wg sync.WaitGroup

	mu      sync.Mutex
	conn    Connection
	started bool
	closed  bool
	gen     uint64
	current *cycle
	state   State
}

// New creates a Connector for the given contract descriptors.
func New(set contracts.Set, logger *zap.Logger, opts ...Option) *Connector {
	c := &Connector{
		logger: logger,
		set:    set,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update sets the connection. It starts a new cycle and returns true when the
// provider or the account differs from the previous connection, or on the
// first call. Otherwise it does nothing.
//
// The cycle outlives ctx cancellation but keeps its values.
func (c *Connector) Update(ctx context.Context, conn Connection) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || (c.started && c.conn.equal(conn)) {
		return false
	}
	if c.current != nil {
		c.current.cancel()
	}

	c.started = true
	c.conn = conn
	c.gen++

	cycleCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cy := &cycle{
		gen:    c.gen,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.current = cy

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(cycleCtx, cy, conn)
	}()

	return true
}

// State returns a snapshot of the handles.
func (c *Connector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if c.current != nil {
		select {
		case <-c.current.done:
		default:
			s.Syncing = true
		}
	}
	return s
}

// Wait blocks until the latest cycle finishes and returns the combined
// construction and read failures of that cycle. Missing provider or account
// are not failures.
func (c *Connector) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		cy := c.current
		c.mu.Unlock()

		if cy == nil {
			return nil
		}

		select {
		case <-cy.done:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "wait for cycle")
		}

		c.mu.Lock()
		latest := c.current == cy
		c.mu.Unlock()
		if latest {
			return cy.err
		}
	}
}

// Close cancels the running cycle and waits for all cycles to return.
func (c *Connector) Close() {
	c.mu.Lock()
	c.closed = true
	if c.current != nil {
		c.current.cancel()
	}
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *Connector) run(ctx context.Context, cy *cycle, conn Connection) {
	defer close(cy.done)
	defer cy.cancel()

	logger := c.logger.With(zap.Uint64("cycle", cy.gen))
	logger.Debug("sync started", zap.String("account", conn.Account))

	var (
		wg   sync.WaitGroup
		errs = make([]error, 3)
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		errs[0] = c.syncToken(ctx, logger, cy.gen, conn, contracts.USDC, c.set.USDC)
	}()
	go func() {
		defer wg.Done()
		errs[1] = c.syncToken(ctx, logger, cy.gen, conn, contracts.JOE, c.set.JOE)
	}()
	go func() {
		defer wg.Done()
		errs[2] = c.syncAMM(ctx, logger, cy.gen, conn)
	}()
	wg.Wait()

	cy.err = multierr.Combine(errs...)
	logger.Debug("sync finished", zap.Error(cy.err))
}

// acquire obtains the signer a handle is bound to. It returns nil without an
// error when there is nothing to connect to.
func (c *Connector) acquire(ctx context.Context, logger *zap.Logger, conn Connection, name string) (*wallet.Signer, error) {
	if conn.Provider == nil {
		logger.Info(apperrors.ErrNoProvider.Error())
		return nil, nil
	}
	if conn.Account == "" {
		logger.Info(apperrors.ErrNoAccount.Error())
		return nil, nil
	}

	signer, err := conn.Provider.DefaultSigner(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: conn.Provider.DefaultSigner", name)
	}
	return signer, nil
}

func (c *Connector) syncToken(
	ctx context.Context,
	logger *zap.Logger,
	gen uint64,
	conn Connection,
	kind contracts.TokenKind,
	desc contracts.Descriptor,
) error {
	logger = logger.With(zap.String("contract", desc.Name))

	signer, err := c.acquire(ctx, logger, conn, desc.Name)
	if err != nil {
		return c.fail(ctx, logger, "failed to acquire signer", err)
	}
	if signer == nil {
		return nil
	}

	token, err := contracts.NewToken(kind, desc, conn.Provider.Backend(), signer, c.callTimeout)
	if err != nil {
		return c.fail(ctx, logger, "failed to bind contract", errors.Wrapf(err, "%s: contracts.NewToken", desc.Name))
	}

	symbol, err := token.Symbol(ctx)
	if err != nil {
		return c.fail(ctx, logger, "failed to read symbol",
			apperrors.Wrap(apperrors.ErrContractRead, desc.Name+".symbol", err))
	}

	c.publish(logger, gen, func(s *State) {
		h := &TokenHandle{Symbol: symbol, Contract: token}
		if kind == contracts.USDC {
			s.USDC = h
		} else {
			s.JOE = h
		}
	})
	return nil
}

func (c *Connector) syncAMM(ctx context.Context, logger *zap.Logger, gen uint64, conn Connection) error {
	desc := c.set.AMM
	logger = logger.With(zap.String("contract", desc.Name))

	signer, err := c.acquire(ctx, logger, conn, desc.Name)
	if err != nil {
		return c.fail(ctx, logger, "failed to acquire signer", err)
	}
	if signer == nil {
		return nil
	}

	amm, err := contracts.NewAMM(desc, conn.Provider.Backend(), signer, c.callTimeout)
	if err != nil {
		return c.fail(ctx, logger, "failed to bind contract", errors.Wrapf(err, "%s: contracts.NewAMM", desc.Name))
	}

	precision, err := amm.Precision(ctx)
	if err != nil {
		return c.fail(ctx, logger, "failed to read precision",
			apperrors.Wrap(apperrors.ErrContractRead, desc.Name+".PRECISION", err))
	}

	c.publish(logger, gen, func(s *State) {
		s.AMM = &AMMHandle{SharePrecision: precision, Contract: amm}
	})
	return nil
}

// fail logs err unless the cycle was superseded, in which case the failure
// is expected and not reported.
func (c *Connector) fail(ctx context.Context, logger *zap.Logger, msg string, err error) error {
	if ctx.Err() != nil {
		logger.Debug("cycle cancelled", zap.Error(err))
		return nil
	}
	logger.Warn(msg, zap.Error(err))
	return err
}

func (c *Connector) publish(logger *zap.Logger, gen uint64, apply func(*State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		logger.Debug("stale result discarded", zap.Uint64("latest", c.gen))
		return
	}
	apply(&c.state)
}
