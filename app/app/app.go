package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
	"github.com/marketconnect/cursor-stats/app/internal/cache"
	"github.com/marketconnect/cursor-stats/app/internal/config"
	"github.com/marketconnect/cursor-stats/app/internal/credentials"
	"github.com/marketconnect/cursor-stats/app/internal/cursorapi"
	"github.com/marketconnect/cursor-stats/app/internal/handlers"
	"github.com/marketconnect/cursor-stats/app/internal/i18n"
	"github.com/marketconnect/cursor-stats/app/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// TokenSource supplies the session token for API calls.
type TokenSource interface {
	GetToken(ctx context.Context) (entities.SessionToken, error)
}

// UsageFetcher retrieves a fresh usage bundle.
type UsageFetcher interface {
	FetchUsageStats(ctx context.Context, token entities.SessionToken) (*entities.UsageBundle, error)
}

// App holds all application dependencies
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Credentials TokenSource
	API         UsageFetcher
	Cache       *cache.Cache
	Renderer    *handlers.Renderer
	Actions     *handlers.ActionHandler
}

type options struct {
	storePaths []string
	openStore  credentials.Opener
	httpClient *http.Client
	urlOpener  handlers.URLOpener
	now        func() time.Time
}

// Option overrides a production dependency, mostly for tests.
type Option func(*options)

// WithStorePaths replaces the IDE state database candidates.
func WithStorePaths(paths ...string) Option {
	return func(o *options) { o.storePaths = paths }
}

// WithStoreOpener replaces the SQLite opener.
func WithStoreOpener(open credentials.Opener) Option {
	return func(o *options) { o.openStore = open }
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithURLOpener replaces the opener used by the settings action.
func WithURLOpener(u handlers.URLOpener) Option {
	return func(o *options) { o.urlOpener = u }
}

// WithClock sets the time source shared by the API client, cache and renderer.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewApp creates and initializes all application dependencies. The logger is
// taken from ctx.
func NewApp(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{
		openStore: credentials.OpenSQLite,
		urlOpener: handlers.NewSystemOpener(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.FromContext(ctx)

	if o.storePaths == nil {
		paths, err := config.CandidateStorePaths()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve credential store: %w", err)
		}
		o.storePaths = paths
	}

	apiOpts := []cursorapi.Option{cursorapi.WithClock(o.now)}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, cursorapi.WithHTTPClient(o.httpClient))
	}

	catalog := i18n.New(cfg.Settings.Language)
	c := cache.New(cfg.DataPath(cache.FileName), cfg.CacheDuration.Duration(), log).WithClock(o.now)
	renderer := handlers.NewRenderer(catalog, handlers.RenderOptions{
		Currency:         cfg.Settings.Currency,
		ShowProgressBars: cfg.Settings.ShowProgressBars,
		CacheDuration:    cfg.CacheDuration.Duration(),
	}, log).WithClock(o.now)

	return &App{
		Config:      cfg,
		Logger:      log,
		Credentials: credentials.NewReader(o.storePaths, o.openStore, log),
		API:         cursorapi.NewClient(cfg.APIBaseURL, log, apiOpts...),
		Cache:       c,
		Renderer:    renderer,
		Actions:     handlers.NewActionHandler(c, o.urlOpener, catalog, log),
	}, nil
}

// Run handles one launcher invocation. An action query runs that action;
// anything else prints the usage items as JSON to w.
func (a *App) Run(ctx context.Context, query string, w io.Writer) error {
	if handlers.IsAction(query) {
		return a.Actions.Handle(ctx, query, w)
	}

	token, err := a.Credentials.GetToken(ctx)
	if err != nil {
		return writeItems(w, a.Renderer.NoTokenItem())
	}

	bundle, err := a.Cache.Read()
	if err != nil {
		bundle, err = a.API.FetchUsageStats(ctx, token)
		if err != nil {
			// A stale entry is left in place for the next run.
			return writeItems(w, a.Renderer.APIErrorItem())
		}
		if err := a.Cache.Write(bundle); err != nil {
			a.Logger.Error("failed to write cache", zap.String("path", a.Cache.Path()), zap.Error(err))
		}
	}

	return writeItems(w, a.Renderer.Render(bundle)...)
}

// Close flushes the log.
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return nil
}

func writeItems(w io.Writer, items ...entities.DisplayItem) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entities.ItemList{Items: items}); err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	return nil
}
