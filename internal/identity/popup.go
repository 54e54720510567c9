package identity

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/entra-login/internal/logger"
	"github.com/oshokin/entra-login/internal/utils"
)

const (
	// popupPollInterval is the interval for polling the sign-in window.
	popupPollInterval = 500 * time.Millisecond

	// popupSlowMotionDelay is the delay between browser actions in debug mode.
	popupSlowMotionDelay = 200 * time.Millisecond

	// popupCleanupDelay is the delay to wait for Chrome to release file locks before cleanup.
	popupCleanupDelay = 500 * time.Millisecond

	// popupSpinnerType is the progressbar spinner shown while waiting.
	popupSpinnerType = 14

	// popupCompletedBody is served to the window once the redirect URI is reached.
	popupCompletedBody = "<html><body>Sign-in complete. You can close this window.</body></html>"
)

//go:generate $MOCKGEN -source=popup.go -destination=mocks/popup_mock.go

// Popup shows the authorize URL in a dedicated browser window and waits for the redirect.
type Popup interface {
	// Open navigates a new window to authorizeURL and returns the first URL it reaches
	// that points at redirectURI.
	Open(ctx context.Context, authorizeURL, redirectURI string) (string, error)
}

// RodPopup is a Popup backed by a visible Chrome window controlled through the DevTools protocol.
type RodPopup struct {
	timeout time.Duration
}

// popupSession holds the resources of one sign-in window.
type popupSession struct {
	browser *rod.Browser
	page    *rod.Page
	router  *rod.HijackRouter
	// tempDir stores the temporary profile directory for cleanup.
	tempDir string
	// responses receives the redirect URL captured by the request hijacker.
	responses chan string
}

// NewRodPopup creates a popup that gives up after timeout.
func NewRodPopup(timeout time.Duration) *RodPopup {
	return &RodPopup{timeout: timeout}
}

// Open shows the sign-in window. Closing the window reports user_cancelled,
// running out of time reports popup_timeout.
func (p *RodPopup) Open(ctx context.Context, authorizeURL, redirectURI string) (string, error) {
	session := &popupSession{responses: make(chan string, 1)}
	defer session.cleanup(ctx)

	if err := session.launch(ctx); err != nil {
		return "", fmt.Errorf("failed to open sign-in window: %w", err)
	}

	if err := session.interceptRedirect(ctx, redirectURI); err != nil {
		return "", fmt.Errorf("failed to intercept redirect URI: %w", err)
	}

	logger.Debugf(ctx, "Navigating sign-in window to %s", utils.RedactSecrets(authorizeURL))

	if err := session.page.Navigate(authorizeURL); err != nil {
		return "", fmt.Errorf("failed to navigate sign-in window: %w", err)
	}

	logger.Info(ctx, "Complete the sign-in in the browser window")

	return session.wait(ctx, redirectURI, p.timeout)
}

// launch starts a browser with a fresh profile and opens a blank page.
func (s *popupSession) launch(ctx context.Context) error {
	// A throwaway profile keeps the identity provider session out of the user's browser.
	tempDir, err := os.MkdirTemp("", "entra-login-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary user data directory: %w", err)
	}

	s.tempDir = tempDir

	logger.Debugf(ctx, "Using temporary profile directory: %s", tempDir)

	l := launcher.New().
		// User needs to see the window to sign in.
		Headless(false).
		UserDataDir(tempDir)

	if chromePath, exists := launcher.LookPath(); exists {
		logger.Debugf(ctx, "Using system Chrome installation at: %s", chromePath)

		l = l.Bin(chromePath)
	} else {
		logger.Debug(ctx, "System Chrome not found, downloading Chromium")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Debugf(ctx, "Browser launched at: %s", controlURL)

	browser := rod.New().ControlURL(controlURL)

	if logger.IsDebugLevel() {
		browser = browser.
			// Logs all CDP events.
			Trace(true).
			SlowMotion(popupSlowMotionDelay)
	}

	if err = browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	s.page = page

	return nil
}

// interceptRedirect answers requests to the redirect URI locally and reports their URL,
// so no server has to listen on it.
func (s *popupSession) interceptRedirect(ctx context.Context, redirectURI string) error {
	s.router = s.page.HijackRequests()

	err := s.router.Add(redirectURI+"*", "", func(h *rod.Hijack) {
		requestURL := h.Request.URL().String()
		if !matchesRedirect(requestURL, redirectURI) {
			h.ContinueRequest(&proto.FetchContinueRequest{})

			return
		}

		logger.Debugf(ctx, "Redirect URI reached: %s", utils.RedactSecrets(requestURL))

		h.Response.SetHeader("Content-Type", "text/html; charset=utf-8")
		h.Response.SetBody(popupCompletedBody)

		select {
		case s.responses <- requestURL:
		default:
		}
	})
	if err != nil {
		return err
	}

	go s.router.Run()

	return nil
}

// wait polls the window until it reaches the redirect URI, is closed or runs out of time.
func (s *popupSession) wait(ctx context.Context, redirectURI string, timeout time.Duration) (string, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Waiting for sign-in"),
		progressbar.OptionSpinnerType(popupSpinnerType),
		progressbar.OptionClearOnFinish(),
	)

	defer func() {
		_ = bar.Finish()
	}()

	ticker := time.NewTicker(popupPollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var lastURL string

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", newAuthError(ErrorCodePopupTimeout, fmt.Sprintf("sign-in did not complete within %v", timeout))
		case responseURL := <-s.responses:
			return responseURL, nil
		case <-ticker.C:
		}

		_ = bar.Add(1)

		currentURL, alive := s.currentURL(ctx)
		if !alive {
			return "", newAuthError(ErrorCodeUserCancelled, "sign-in window was closed")
		}

		if currentURL != lastURL {
			logger.Debugf(ctx, "Sign-in window URL changed: %s", utils.RedactSecrets(currentURL))

			lastURL = currentURL
		}

		if matchesRedirect(currentURL, redirectURI) {
			return currentURL, nil
		}
	}
}

// currentURL safely gets the current page URL; alive is false once the window is gone.
func (s *popupSession) currentURL(ctx context.Context) (currentURL string, alive bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "Sign-in window panic recovered: %v", r)

			currentURL, alive = "", false
		}
	}()

	info, err := s.page.Info()
	if err != nil {
		return "", false
	}

	return info.URL, true
}

// cleanup closes the browser and removes the temporary profile.
func (s *popupSession) cleanup(ctx context.Context) {
	if s.router != nil {
		if err := s.router.Stop(); err != nil {
			logger.Debugf(ctx, "Hijack router stop error (expected): %v", err)
		}
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			logger.Debugf(ctx, "Browser close error (expected): %v", err)
		}
	}

	if s.tempDir != "" {
		// Give Chrome a moment to release file locks.
		time.Sleep(popupCleanupDelay)

		if err := os.RemoveAll(s.tempDir); err != nil {
			logger.Debugf(ctx, "Could not clean up temp directory %s: %v", s.tempDir, err)
		}
	}
}
