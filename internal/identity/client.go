package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/oshokin/entra-login/internal/config"
	"github.com/oshokin/entra-login/internal/logger"
	transporthttp "github.com/oshokin/entra-login/internal/transport/http"
)

// multiTenantAuthorities are the tenant aliases whose discovery documents
// publish a templated issuer instead of their own URL.
var multiTenantAuthorities = []string{"common", "organizations", "consumers"}

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

// Client is a public OpenID Connect client that signs users in through a browser.
type Client interface {
	// Initialize discovers the identity provider and loads the account cache.
	// It must succeed before any interactive call; repeated calls are no-ops.
	Initialize(ctx context.Context) error
	// HandleRedirect completes a redirect sign-in when the client was created with a
	// redirect response. It returns nil when there is nothing to complete.
	HandleRedirect(ctx context.Context) (*AuthenticationResult, error)
	// AllAccounts returns the known accounts.
	AllAccounts() []*Account
	// ActiveAccount returns the active account, or nil.
	ActiveAccount() *Account
	// SetActiveAccount changes the active account; nil clears it.
	SetActiveAccount(account *Account) error
	// LoginPopup signs the user in through a dedicated browser window.
	LoginPopup(ctx context.Context, request InteractiveRequest) (*AuthenticationResult, error)
	// LoginRedirect sends the user's browser to the authorize endpoint.
	// The response is completed by a later HandleRedirect.
	LoginRedirect(ctx context.Context, request InteractiveRequest) error
	// LogoutRedirect forgets the account and sends the user's browser to the end-session endpoint.
	LogoutRedirect(ctx context.Context, request LogoutRequest) error
}

// Option configures a ClientImpl.
type Option func(*ClientImpl)

// WithHTTPClient sets the HTTP client used for discovery, keys and token requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *ClientImpl) {
		c.httpClient = httpClient
	}
}

// WithPopup sets the sign-in window implementation.
func WithPopup(popup Popup) Option {
	return func(c *ClientImpl) {
		c.popup = popup
	}
}

// WithNavigator sets how the user's browser is navigated.
func WithNavigator(navigator Navigator) Option {
	return func(c *ClientImpl) {
		c.navigator = navigator
	}
}

// WithCache sets the account cache.
func WithCache(cache AccountCache) Option {
	return func(c *ClientImpl) {
		c.cache = cache
	}
}

// WithRedirectResponse sets the URL the browser reached after a redirect sign-in.
func WithRedirectResponse(responseURL string) Option {
	return func(c *ClientImpl) {
		c.redirectResponse = responseURL
	}
}

// WithClock sets the time source used for token validation and sign-in timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *ClientImpl) {
		c.now = now
	}
}

// ClientImpl implements Client against a single authority.
type ClientImpl struct {
	cfg        *config.Config
	httpClient *http.Client
	popup      Popup
	navigator  Navigator
	cache      AccountCache
	now        func() time.Time

	mu sync.RWMutex
	// redirectResponse is consumed by the first HandleRedirect.
	redirectResponse   string
	initialized        bool
	oauth2Config       oauth2.Config
	verifier           *oidc.IDTokenVerifier
	endSessionEndpoint string
}

// NewClient creates a client for the configured authority.
func NewClient(cfg *config.Config, opts ...Option) (*ClientImpl, error) {
	c := &ClientImpl{
		cfg: cfg,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = transporthttp.NewClient()
	}

	if c.popup == nil {
		c.popup = NewRodPopup(cfg.ParsedPopupTimeout)
	}

	if c.navigator == nil {
		c.navigator = NewSystemNavigator()
	}

	if c.cache == nil {
		cache, err := NewAccountCache(cfg)
		if err != nil {
			return nil, err
		}

		c.cache = cache
	}

	return c, nil
}

// Initialize discovers the identity provider and loads the account cache.
func (c *ClientImpl) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	authority := c.cfg.ParsedAuthority
	ctx = oidc.ClientContext(ctx, c.httpClient)

	verifierConfig := &oidc.Config{
		ClientID: c.cfg.ClientID,
		Now:      c.now,
	}

	if isMultiTenant(authority) {
		// Tokens carry the issuer of the user's home tenant.
		ctx = oidc.InsecureIssuerURLContext(ctx, authority)
		verifierConfig.SkipIssuerCheck = true
	}

	logger.Debugf(ctx, "Discovering identity provider at %s", authority)

	provider, err := oidc.NewProvider(ctx, authority)
	if err != nil {
		return fmt.Errorf("failed to discover identity provider: %w", err)
	}

	var metadata struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}

	if err = provider.Claims(&metadata); err != nil {
		return fmt.Errorf("failed to read provider metadata: %w", err)
	}

	if err = c.cache.Load(ctx); err != nil {
		return fmt.Errorf("failed to load account cache: %w", err)
	}

	endpoint := provider.Endpoint()
	// Public clients authenticate with client_id in the form body only.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	c.oauth2Config = oauth2.Config{
		ClientID:    c.cfg.ClientID,
		Endpoint:    endpoint,
		RedirectURL: c.cfg.RedirectURI,
	}
	c.verifier = provider.Verifier(verifierConfig)
	c.endSessionEndpoint = metadata.EndSessionEndpoint
	c.initialized = true

	logger.Debugf(ctx, "Identity client initialized for %s", authority)

	return nil
}

// HandleRedirect completes a pending redirect sign-in.
func (c *ClientImpl) HandleRedirect(ctx context.Context) (*AuthenticationResult, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	responseURL := c.redirectResponse
	c.redirectResponse = ""
	c.mu.Unlock()

	if responseURL == "" {
		return nil, nil //nolint:nilnil // Nothing to complete is not an error.
	}

	pending := c.cache.Pending()
	if pending == nil {
		return nil, ErrNoPendingRequest
	}

	// The pending request is kept until a URL that answers it arrives.
	response, err := parseRedirectResponse(responseURL, c.cfg.RedirectURI)
	if err != nil {
		return nil, err
	}

	if response.Error == "" && response.State != pending.State {
		return nil, newAuthError(ErrorCodeStateMismatch, "response state does not match the pending request")
	}

	// A response is only ever redeemed once.
	if err = c.cache.SetPending(nil); err != nil {
		return nil, fmt.Errorf("failed to clear pending request: %w", err)
	}

	return c.redeem(ctx, response, pending)
}

// AllAccounts returns the known accounts.
func (c *ClientImpl) AllAccounts() []*Account {
	return c.cache.Accounts()
}

// ActiveAccount returns the active account, or nil.
func (c *ClientImpl) ActiveAccount() *Account {
	return c.cache.Active()
}

// SetActiveAccount changes the active account; nil clears it.
func (c *ClientImpl) SetActiveAccount(account *Account) error {
	if account == nil {
		return c.cache.SetActive("")
	}

	return c.cache.SetActive(account.HomeAccountID)
}

func (c *ClientImpl) ensureInitialized() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.initialized {
		return newAuthError(ErrorCodeUninitialized, "Initialize must complete before interactive calls")
	}

	return nil
}

func isMultiTenant(authority string) bool {
	for _, alias := range multiTenantAuthorities {
		if strings.Contains(authority, "/"+alias+"/") || strings.HasSuffix(authority, "/"+alias) {
			return true
		}
	}

	return false
}
