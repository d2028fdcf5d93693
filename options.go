package board

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Controller during creation.
// Use functional options to customize Controller behavior.
//
// Example:
//
//	// In-memory session (default store)
//	ctl, _ := board.NewController()
//
//	// Durable SQLite-backed session
//	store, _ := board.OpenSQLiteStore("board.db")
//	ctl, _ := board.NewController(board.WithStore(store))
type Option func(*options)

// options holds optional configuration for Controller creation.
type options struct {
	store         Store
	key           string
	logger        *slog.Logger
	fetcher       Fetcher
	httpClient    *http.Client
	fetchTimeout  time.Duration
	maxImageBytes int64
	ticker        TickerFunc
}

// defaultOptions returns the default controller options.
func defaultOptions() options {
	o := options{
		store:         NewMemoryStore(),
		key:           DefaultDocumentKey,
		logger:        Logger(),
		httpClient:    http.DefaultClient,
		fetchTimeout:  DefaultFetchTimeout,
		maxImageBytes: DefaultMaxImageBytes,
		ticker:        defaultTicker,
	}
	return o
}

// WithStore sets the persistence adapter. The default is an in-memory
// store, which makes the controller usable without any setup but loses
// the document when the process exits.
func WithStore(s Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithDocumentKey overrides the store key addressing the document.
func WithDocumentKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithLogger sets the controller's logger. The default is the
// package-level logger (see SetLogger), silent unless configured.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFetcher replaces the background retrieval implementation.
// Use this for dependency injection in tests or to add caching.
func WithFetcher(f Fetcher) Option {
	return func(o *options) {
		if f != nil {
			o.fetcher = f
		}
	}
}

// WithHTTPClient sets the client used for remote background fetches.
// Ignored when WithFetcher is given.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithFetchTimeout bounds a single background retrieval.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

// WithMaxImageBytes bounds the size of a fetched background image.
func WithMaxImageBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxImageBytes = n
		}
	}
}

// WithTicker replaces the timer's tick source. Tests use this to drive
// the elapsed counter deterministically.
func WithTicker(t TickerFunc) Option {
	return func(o *options) {
		if t != nil {
			o.ticker = t
		}
	}
}
