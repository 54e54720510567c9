package identity

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryCache keeps accounts for the lifetime of the process.
type MemoryCache struct {
	mu sync.RWMutex
	// accounts holds known accounts keyed by home account ID.
	accounts *lru.Cache[string, *Account]
	// activeID is the home account ID of the active account.
	activeID string
	// pending is the pending redirect request.
	pending *PendingRequest
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() (*MemoryCache, error) {
	accounts, err := lru.New[string, *Account](maxCachedAccounts)
	if err != nil {
		return nil, fmt.Errorf("failed to create accounts cache: %w", err)
	}

	return &MemoryCache{accounts: accounts}, nil
}

// Load is a no-op.
func (c *MemoryCache) Load(context.Context) error {
	return nil
}

// Persistent returns false.
func (c *MemoryCache) Persistent() bool {
	return false
}

// Accounts returns the known accounts, least recently signed-in first.
func (c *MemoryCache) Accounts() []*Account {
	return c.accounts.Values()
}

// Put adds or replaces an account.
func (c *MemoryCache) Put(account *Account) error {
	if account == nil {
		return ErrNilAccount
	}

	c.accounts.Add(account.HomeAccountID, account)

	return nil
}

// Remove forgets an account.
func (c *MemoryCache) Remove(homeAccountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts.Remove(homeAccountID)

	if c.activeID == homeAccountID {
		c.activeID = ""
	}

	return nil
}

// Active returns the active account, or nil.
func (c *MemoryCache) Active() *Account {
	c.mu.RLock()
	activeID := c.activeID
	c.mu.RUnlock()

	if activeID == "" {
		return nil
	}

	account, ok := c.accounts.Peek(activeID)
	if !ok {
		return nil
	}

	return account
}

// SetActive changes the active account.
func (c *MemoryCache) SetActive(homeAccountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeID = homeAccountID

	return nil
}

// Pending returns the pending redirect request, or nil.
func (c *MemoryCache) Pending() *PendingRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.pending
}

// SetPending stores the pending redirect request.
func (c *MemoryCache) SetPending(request *PendingRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = request

	return nil
}

func (c *MemoryCache) activeAccountID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.activeID
}
