package wallet

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-dapp-connector/internal/apperrors"
)

// KeystoreProvider is a wallet backed by a local encrypted keystore.
type KeystoreProvider struct {
	mu         sync.Mutex
	ks         *keystore.KeyStore
	backend    Backend
	passphrase string
}

// OpenKeystore opens the keystore at dir and dials rpcURL for chain access.
func OpenKeystore(ctx context.Context, dir, rpcURL, passphrase string) (*KeystoreProvider, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "ethclient.DialContext")
	}

	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	return NewKeystoreProvider(ks, client, passphrase), nil
}

// NewKeystoreProvider creates a provider over an opened keystore.
func NewKeystoreProvider(ks *keystore.KeyStore, backend Backend, passphrase string) *KeystoreProvider {
	return &KeystoreProvider{
		ks:         ks,
		backend:    backend,
		passphrase: passphrase,
	}
}

// Backend returns the chain access of the provider.
func (p *KeystoreProvider) Backend() Backend {
	return p.backend
}

// DefaultSigner unlocks the first keystore account and returns its signer.
func (p *KeystoreProvider) DefaultSigner(ctx context.Context) (*Signer, error) {
	p.mu.Lock()
	ks := p.ks
	p.mu.Unlock()
	if ks == nil {
		return nil, errors.Wrap(apperrors.ErrNoProvider, "keystore is closed")
	}

	accs := ks.Accounts()
	if len(accs) == 0 {
		return nil, errors.Wrap(apperrors.ErrNoAccount, "keystore is empty")
	}
	acc := accs[0]

	if err := ks.Unlock(acc, p.passphrase); err != nil {
		return nil, errors.Wrap(err, "ks.Unlock")
	}

	chainID, err := p.backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "p.backend.ChainID")
	}

	opts, err := bind.NewKeyStoreTransactorWithChainID(ks, acc, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "bind.NewKeyStoreTransactorWithChainID")
	}

	return &Signer{Account: acc.Address, Opts: opts}, nil
}

// Close locks every unlocked account and releases the keystore, then closes
// the chain connection when the backend owns one. The keystore has no Close of
// its own: its account cache watcher stops once the released keystore is
// garbage collected.
func (p *KeystoreProvider) Close() {
	p.mu.Lock()
	ks := p.ks
	p.ks = nil
	p.mu.Unlock()

	if ks != nil {
		for _, acc := range ks.Accounts() {
			_ = ks.Lock(acc.Address)
		}
	}

	if c, ok := p.backend.(interface{ Close() }); ok {
		c.Close()
	}
}
