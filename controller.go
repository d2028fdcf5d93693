package board

import (
	"context"
	"image"
	"log/slog"
	"math"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Controller composes the document model, persistence, the background
// fetch pipeline and the session timer. It is the sole mutator of the
// document: the presentation layer feeds it intents and re-reads
// snapshots after each change notification.
//
// All mutations are serialized by one mutex. Fetch completions and
// timer ticks take the same mutex, so they interleave between intents
// but never overlap one. The fetch pipeline's generation token handles
// the remaining ordering problem (stale completions).
type Controller struct {
	store  Store
	key    string
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	g      *errgroup.Group

	mu       sync.Mutex
	doc      Document
	fetch    fetchPipeline
	view     ViewTransform
	viewport Size

	elapsed  int
	timerRun *timerRun
	ticker   TickerFunc

	listeners []func()
}

// NewController builds a controller from options, loading the persisted
// document from the store. Corrupt persisted bytes are not fatal: the
// controller logs a warning and starts from a fresh empty document. If
// the loaded document carries a fetchable background, its retrieval
// starts immediately.
func NewController(opts ...Option) (*Controller, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.fetcher == nil {
		o.fetcher = &defaultFetcher{client: o.httpClient, maxBytes: o.maxImageBytes}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	c := &Controller{
		store:  o.store,
		key:    o.key,
		logger: o.logger,
		ctx:    ctx,
		cancel: cancel,
		g:      g,
		view:   NewViewTransform(),
		fetch: fetchPipeline{
			fetcher: o.fetcher,
			timeout: o.fetchTimeout,
			logger:  o.logger,
		},
		ticker: o.ticker,
	}

	doc := NewDocument()
	data, ok, err := c.store.Load(ctx, c.key)
	if err != nil {
		cancel()
		return nil, err
	}
	if ok {
		loaded, derr := DecodeDocument(data)
		if derr != nil {
			c.logger.Warn("persisted document is corrupt, starting fresh",
				"key", c.key, "err", derr)
		} else {
			doc = loaded
			c.logger.Info("document loaded",
				"key", c.key, "stickers", len(doc.Stickers))
		}
	}
	c.doc = doc

	c.mu.Lock()
	c.resolveLocked(doc.Background)
	c.mu.Unlock()
	return c, nil
}

// Close cancels background work and waits for it to finish. The store
// is not closed; the caller owns it.
func (c *Controller) Close() error {
	c.StopTimer()
	c.cancel()
	return c.g.Wait()
}

// AddSticker places a sticker where the user tapped. viewportPoint is
// converted to model space through the current view transform, rounded
// to integer model coordinates. The new document is persisted before
// the call returns; on a store failure the document is left unchanged
// and the error returned.
func (c *Controller) AddSticker(text string, viewportPoint Point, size int) (Sticker, error) {
	c.mu.Lock()
	model := c.view.ToModel(viewportPoint, c.viewport)
	doc := c.doc.Snapshot()
	s := doc.AddSticker(text, int(math.Round(model.X)), int(math.Round(model.Y)), size)
	if err := c.saveLocked(doc); err != nil {
		c.mu.Unlock()
		return Sticker{}, err
	}
	c.doc = doc
	c.mu.Unlock()
	c.notify()
	return s, nil
}

// SetBackground replaces the background, persists the document and
// kicks off resolution of the new reference. The resolved image
// surfaces later through BackgroundImage and a change notification; a
// failed fetch simply leaves the image absent.
func (c *Controller) SetBackground(ref Background) error {
	c.mu.Lock()
	doc := c.doc.Snapshot()
	doc.SetBackground(ref)
	if err := c.saveLocked(doc); err != nil {
		c.mu.Unlock()
		return err
	}
	c.doc = doc
	c.resolveLocked(ref)
	c.mu.Unlock()
	c.notify()
	return nil
}

// resolveLocked implements the supersede-wins contract: bump the
// generation token (invalidating every outstanding request), clear the
// published image, and for fetchable references start an async
// retrieval carrying the token it was issued with.
func (c *Controller) resolveLocked(ref Background) {
	token := c.fetch.begin()
	if !ref.NeedsFetch() {
		return
	}
	c.g.Go(func() error {
		img, err := c.fetch.retrieve(c.ctx, ref)
		if err != nil {
			c.logger.Warn("background fetch failed", "ref", ref.String(), "err", err)
			img = nil
		}
		c.mu.Lock()
		applied := c.fetch.apply(token, img)
		c.mu.Unlock()
		if applied {
			c.notify()
		}
		return nil
	})
}

// saveLocked writes doc through to the store. Called with c.mu held,
// before the new document is installed, so a failed save leaves no
// half-applied state.
func (c *Controller) saveLocked(doc Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	return c.store.Save(c.ctx, c.key, data)
}

// SetView updates the transform state and viewport size used to map
// viewport points to model space in AddSticker. The presentation layer
// calls this whenever either changes.
func (c *Controller) SetView(vt ViewTransform, viewport Size) {
	c.mu.Lock()
	c.view = vt
	c.viewport = viewport
	c.mu.Unlock()
}

// View returns the current transform state and viewport size.
func (c *Controller) View() (ViewTransform, Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view, c.viewport
}

// Document returns a snapshot of the whole document.
func (c *Controller) Document() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Snapshot()
}

// Stickers returns a snapshot of the sticker sequence in z-order.
func (c *Controller) Stickers() []Sticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Snapshot().Stickers
}

// Background returns the current background reference.
func (c *Controller) Background() Background {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Background
}

// BackgroundImage returns the resolved background image, or nil while
// no fetch has completed for the current reference (including while one
// is pending, and after a failed fetch).
func (c *Controller) BackgroundImage() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetch.img
}

// OnChange registers fn to be called synchronously after every state
// change: mutating intents, fetch completions and timer ticks. fn runs
// outside the controller's mutex and may call the read accessors.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	ls := slices.Clone(c.listeners)
	c.mu.Unlock()
	for _, fn := range ls {
		fn()
	}
}
