package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
	"github.com/marketconnect/cursor-stats/app/internal/i18n"
	"github.com/marketconnect/cursor-stats/app/internal/stats"
)

// Item uids, also used as the item arg so a selection re-invokes the tool
// with the matching action.
const (
	UIDPremium  = "premium_requests"
	UIDSpend    = "usage_based_pricing"
	UIDAccount  = "account_info"
	UIDRefresh  = "refresh"
	UIDSettings = "open_cursor_settings"
	UIDError    = "error"
	UIDNoToken  = "no_token"
	UIDAPIError = "api_error"
)

const subtitleSep = " | "

// RenderOptions carries the user settings that affect item text.
type RenderOptions struct {
	Currency         string
	ShowProgressBars bool
	CacheDuration    time.Duration
}

// Renderer turns a usage bundle into launcher items.
type Renderer struct {
	catalog i18n.Catalog
	opts    RenderOptions
	now     func() time.Time
	logger  *zap.Logger
}

// NewRenderer creates a Renderer with injected dependencies.
func NewRenderer(catalog i18n.Catalog, opts RenderOptions, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{catalog: catalog, opts: opts, now: time.Now, logger: logger}
}

// WithClock returns a copy of r that reads the current time from now.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// Render builds the items for bundle in fixed order: quota, spend (only with
// a positive hard limit), billing cycle (only with a start of month), then the
// refresh and settings actions. Any failure replaces the whole list with a
// single error item.
func (r *Renderer) Render(bundle *entities.UsageBundle) (items []entities.DisplayItem) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while rendering items", zap.Any("panic", rec))
			items = []entities.DisplayItem{r.ErrorItem(fmt.Errorf("%v", rec))}
		}
	}()

	items, err := r.render(bundle)
	if err != nil {
		r.logger.Error("failed to render items", zap.Error(err))
		return []entities.DisplayItem{r.ErrorItem(err)}
	}
	return items
}

func (r *Renderer) render(bundle *entities.UsageBundle) ([]entities.DisplayItem, error) {
	if bundle == nil {
		return nil, errors.New("no usage data")
	}
	now := r.now()
	m, err := stats.ComputeMetrics(bundle, now)
	if err != nil {
		return nil, err
	}

	items := []entities.DisplayItem{r.premiumItem(m)}
	if m.Spend != nil {
		items = append(items, r.spendItem(*m.Spend, m.SpendBar))
	}
	if m.Period != nil {
		items = append(items, r.accountItem(m.Period.Start, now))
	}
	items = append(items, r.refreshItem(), r.settingsItem())
	return items, nil
}

func (r *Renderer) premiumItem(m stats.Metrics) entities.DisplayItem {
	q := m.Quota
	parts := []string{
		r.catalog.Tf("premium_used", q.Current, q.Max),
		r.catalog.Tf("premium_remaining", q.Remaining),
	}
	if m.Period != nil {
		if m.Period.RemainingDays > 0 {
			parts = append(parts, r.catalog.Tf("premium_daily", m.DailyRemaining))
		}
		parts = append(parts, r.catalog.Tf("period_progress", m.Period.ProgressPercentage))
	}

	return entities.DisplayItem{
		UID:      UIDPremium,
		Title:    r.catalog.Tf("premium_title", r.bar(m.QuotaBar)),
		Subtitle: strings.Join(parts, subtitleSep),
		Arg:      UIDPremium,
	}.WithCopySubtitle(r.catalog.Tf("premium_copy", q.Current, q.Max, q.Percentage))
}

func (r *Renderer) spendItem(s stats.Spend, bar stats.Bar) entities.DisplayItem {
	total := stats.FormatCurrency(s.Total, r.opts.Currency)
	limit := stats.FormatCurrency(s.Limit, r.opts.Currency)

	return entities.DisplayItem{
		UID:      UIDSpend,
		Title:    r.catalog.Tf("spend_title", r.bar(bar)),
		Subtitle: r.catalog.Tf("spend_subtitle", total, limit, stats.FormatCurrency(s.Remaining, r.opts.Currency)),
		Arg:      UIDSpend,
	}.WithCopySubtitle(r.catalog.Tf("spend_copy", total, limit, s.Percentage))
}

func (r *Renderer) accountItem(start, now time.Time) entities.DisplayItem {
	date := start.Format(time.DateOnly)
	return entities.DisplayItem{
		UID:      UIDAccount,
		Title:    r.catalog.T("account_title"),
		Subtitle: r.catalog.Tf("account_subtitle", date, stats.DaysSince(start, now)),
		Arg:      UIDAccount,
	}.WithCopySubtitle(r.catalog.Tf("account_copy", date))
}

func (r *Renderer) refreshItem() entities.DisplayItem {
	return entities.DisplayItem{
		UID:      UIDRefresh,
		Title:    r.catalog.T("refresh_title"),
		Subtitle: r.catalog.Tf("refresh_subtitle", int(r.opts.CacheDuration/time.Second)),
		Arg:      UIDRefresh,
	}
}

func (r *Renderer) settingsItem() entities.DisplayItem {
	return entities.DisplayItem{
		UID:      UIDSettings,
		Title:    r.catalog.T("settings_title"),
		Subtitle: r.catalog.T("settings_subtitle"),
		Arg:      UIDSettings,
	}
}

// bar renders a progress bar, or only its percentage when bars are disabled.
func (r *Renderer) bar(b stats.Bar) string {
	if !r.opts.ShowProgressBars {
		return b.Label()
	}
	return b.String()
}

// ErrorItem is the single item shown when rendering fails.
func (r *Renderer) ErrorItem(err error) entities.DisplayItem {
	return entities.DisplayItem{
		UID:      UIDError,
		Title:    r.catalog.T("error_title"),
		Subtitle: r.catalog.Tf("error_subtitle", err.Error()),
		Arg:      UIDError,
	}
}

// NoTokenItem is shown when no session token could be read.
func (r *Renderer) NoTokenItem() entities.DisplayItem {
	return entities.DisplayItem{
		UID:      UIDNoToken,
		Title:    r.catalog.T("no_token_title"),
		Subtitle: r.catalog.T("no_token_subtitle"),
		Arg:      UIDError,
	}
}

// APIErrorItem is shown when the usage endpoint is unavailable.
func (r *Renderer) APIErrorItem() entities.DisplayItem {
	return entities.DisplayItem{
		UID:      UIDAPIError,
		Title:    r.catalog.T("api_error_title"),
		Subtitle: r.catalog.T("api_error_subtitle"),
		Arg:      UIDError,
	}
}
