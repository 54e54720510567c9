package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/entra-login/internal/constants"
	"github.com/oshokin/entra-login/internal/logger"
)

// cacheFileContent is the on-disk layout of the file cache.
type cacheFileContent struct {
	Accounts        []*Account      `yaml:"accounts"`
	ActiveAccountID string          `yaml:"active_account_id,omitempty"`
	PendingRequest  *PendingRequest `yaml:"pending_request,omitempty"`
}

// FileCache keeps accounts in a YAML file readable only by the owner.
// Every change is written through to the file.
type FileCache struct {
	*MemoryCache

	// flushMu serializes writes to the file.
	flushMu sync.Mutex
	// path is the cache file path.
	path string
}

// NewFileCache creates a cache backed by the given file. The file is read by Load.
func NewFileCache(path string) (*FileCache, error) {
	memory, err := NewMemoryCache()
	if err != nil {
		return nil, err
	}

	return &FileCache{MemoryCache: memory, path: path}, nil
}

// Load reads the cache file. A missing file is an empty cache.
func (c *FileCache) Load(ctx context.Context) error {
	content, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debugf(ctx, "Account cache %s does not exist yet", c.path)

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read account cache: %w", err)
	}

	var stored cacheFileContent
	if err = yaml.Unmarshal(content, &stored); err != nil {
		return fmt.Errorf("failed to parse account cache %s: %w", c.path, err)
	}

	for _, account := range stored.Accounts {
		if account == nil || account.HomeAccountID == "" {
			continue
		}

		c.accounts.Add(account.HomeAccountID, account)
	}

	c.mu.Lock()
	c.activeID = stored.ActiveAccountID
	c.pending = stored.PendingRequest
	c.mu.Unlock()

	logger.Debugf(ctx, "Loaded %d account(s) from %s", c.accounts.Len(), c.path)

	return nil
}

// Persistent returns true.
func (c *FileCache) Persistent() bool {
	return true
}

// Put adds or replaces an account and writes the file.
func (c *FileCache) Put(account *Account) error {
	if err := c.MemoryCache.Put(account); err != nil {
		return err
	}

	return c.flush()
}

// Remove forgets an account and writes the file.
func (c *FileCache) Remove(homeAccountID string) error {
	if err := c.MemoryCache.Remove(homeAccountID); err != nil {
		return err
	}

	return c.flush()
}

// SetActive changes the active account and writes the file.
func (c *FileCache) SetActive(homeAccountID string) error {
	if err := c.MemoryCache.SetActive(homeAccountID); err != nil {
		return err
	}

	return c.flush()
}

// SetPending stores the pending redirect request and writes the file.
func (c *FileCache) SetPending(request *PendingRequest) error {
	if err := c.MemoryCache.SetPending(request); err != nil {
		return err
	}

	return c.flush()
}

// flush writes the current state to a temporary file and renames it over the cache file.
func (c *FileCache) flush() error {
	c.flushMu.Lock()
	defer c.flushMu.Unlock()

	content, err := yaml.Marshal(&cacheFileContent{
		Accounts:        c.Accounts(),
		ActiveAccountID: c.activeAccountID(),
		PendingRequest:  c.Pending(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal account cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err = os.MkdirAll(dir, constants.PrivateFolderPermissions); err != nil {
		return fmt.Errorf("failed to create account cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary account cache: %w", err)
	}

	tmpName := tmp.Name()

	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write account cache: %w", err)
	}

	if err = tmp.Chmod(constants.PrivateFilePermissions); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to restrict account cache permissions: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close account cache: %w", err)
	}

	if err = os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("failed to replace account cache: %w", err)
	}

	return nil
}
