package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/internal/i18n"
)

// SettingsURL is the account page opened by the settings action.
const SettingsURL = "https://www.cursor.com/settings"

var (
	actions     = []string{UIDRefresh, UIDSettings, UIDPremium, UIDSpend, UIDAccount}
	copyActions = []string{UIDPremium, UIDSpend, UIDAccount}
)

// IsAction reports whether query names an action rather than a stats request.
func IsAction(query string) bool {
	return lo.Contains(actions, query)
}

// CacheInvalidator drops the cached usage snapshot.
type CacheInvalidator interface {
	Invalidate() error
}

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// ActionHandler executes the item actions selected in the launcher.
type ActionHandler struct {
	cache   CacheInvalidator
	opener  URLOpener
	catalog i18n.Catalog
	logger  *zap.Logger
}

// NewActionHandler creates a new ActionHandler with injected dependencies
func NewActionHandler(cache CacheInvalidator, opener URLOpener, catalog i18n.Catalog, logger *zap.Logger) *ActionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionHandler{cache: cache, opener: opener, catalog: catalog, logger: logger}
}

// Handle runs action and writes its plain-text confirmation to w.
func (h *ActionHandler) Handle(ctx context.Context, action string, w io.Writer) error {
	switch {
	case action == UIDRefresh:
		if err := h.cache.Invalidate(); err != nil {
			h.logger.Error("failed to invalidate cache", zap.Error(err))
			return fmt.Errorf("invalidate cache: %w", err)
		}
		_, err := fmt.Fprintln(w, h.catalog.T("refreshed"))
		return err

	case action == UIDSettings:
		if err := h.opener.Open(ctx, SettingsURL); err != nil {
			h.logger.Error("failed to open settings page", zap.String("url", SettingsURL), zap.Error(err))
			return fmt.Errorf("open settings: %w", err)
		}
		return nil

	case lo.Contains(copyActions, action):
		_, err := fmt.Fprintln(w, h.catalog.Tf("selected", action))
		return err
	}
	return fmt.Errorf("unknown action %q", action)
}
