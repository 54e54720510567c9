package identity

import (
	"context"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/oshokin/entra-login/internal/logger"
	"github.com/oshokin/entra-login/internal/utils"
)

//go:generate $MOCKGEN -source=navigator.go -destination=mocks/navigator_mock.go

// Navigator sends the user's browser to a URL.
type Navigator interface {
	// Navigate opens target in the user's browser.
	Navigate(ctx context.Context, target string) error
}

// SystemNavigator opens URLs in the operating system's default browser.
type SystemNavigator struct{}

// NewSystemNavigator creates a navigator backed by the default browser.
func NewSystemNavigator() *SystemNavigator {
	return &SystemNavigator{}
}

// Navigate opens target in the default browser.
func (n *SystemNavigator) Navigate(ctx context.Context, target string) error {
	logger.Debugf(ctx, "Opening %s in the default browser", utils.RedactSecrets(target))

	launcher.Open(target)

	return nil
}
