package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/oshokin/entra-login/internal/config"
)

// maxCachedAccounts bounds the number of remembered accounts; the least recently
// signed-in account is forgotten first.
const maxCachedAccounts = 32

// PendingRequest is an authorization request that waits for its redirect response.
type PendingRequest struct {
	// State binds the response to the request.
	State string `yaml:"state"`
	// Nonce binds the ID token to the request.
	Nonce string `yaml:"nonce"`
	// CodeVerifier is the PKCE verifier.
	CodeVerifier string `yaml:"code_verifier"`
	// Scopes are the requested scopes.
	Scopes []string `yaml:"scopes"`
	// CreatedAt is when the request was sent.
	CreatedAt time.Time `yaml:"created_at"`
}

// AccountCache remembers known accounts, the active account and a pending redirect request.
// It never holds access or refresh tokens.
type AccountCache interface {
	// Load reads previously stored state. It is a no-op for caches without storage.
	Load(ctx context.Context) error
	// Persistent reports whether the state outlives the process.
	Persistent() bool
	// Accounts returns the known accounts, least recently signed-in first.
	Accounts() []*Account
	// Put adds or replaces an account.
	Put(account *Account) error
	// Remove forgets an account; removing the active account clears the active pointer.
	Remove(homeAccountID string) error
	// Active returns the active account, or nil.
	Active() *Account
	// SetActive changes the active account; an empty ID clears it.
	SetActive(homeAccountID string) error
	// Pending returns the pending redirect request, or nil.
	Pending() *PendingRequest
	// SetPending stores the pending redirect request; nil clears it.
	SetPending(request *PendingRequest) error
}

// NewAccountCache creates the cache selected by the configured cache location.
func NewAccountCache(cfg *config.Config) (AccountCache, error) {
	switch cfg.CacheLocation {
	case config.CacheLocationMemory:
		return NewMemoryCache()
	case config.CacheLocationFile:
		return NewFileCache(cfg.ParsedCacheFile)
	default:
		return nil, fmt.Errorf("%w: '%s'", config.ErrUnknownCacheLocation, cfg.CacheLocation)
	}
}
