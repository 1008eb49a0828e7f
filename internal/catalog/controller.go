package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/models"
)

// State is the controller's fetch state.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is the controller state exposed to the presentation layer.
type Snapshot struct {
	State           State
	Products        []models.Product
	Filters         Filters
	Sort            Sort
	Err             error
	ActiveFilters   int
	AvailableColors []models.Color
	// Seq is the sequence number of the most recently issued fetch.
	Seq uint64
}

// ControllerConfig wires a controller to its collaborators.
type ControllerConfig struct {
	Translator      *Translator
	Store           ProductStore
	CategorySlug    string
	InitialProducts []models.Product
	// FetchTimeout bounds each store round trip; zero means no extra bound.
	FetchTimeout time.Duration
	Logger       *slog.Logger
	// Observer, when set, receives every new snapshot from the controller goroutine.
	Observer func(Snapshot)
}

type event interface{}

type mutateEvent struct {
	apply func(Filters, Sort) (Filters, Sort)
}

type resultEvent struct {
	seq      uint64
	products []models.Product
	err      error
}

// Controller owns the filter/sort state of one mounted catalog view. All
// state changes happen on a single goroutine fed by an event channel.
type Controller struct {
	cfg    ControllerConfig
	log    *slog.Logger
	events chan event
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.RWMutex
	snap Snapshot

	// loop-owned
	seq         uint64
	cancelFetch context.CancelFunc
	fetches     sync.WaitGroup
}

// Mount starts a controller in the Idle state with the seeded product list.
// The controller runs until Unmount or until ctx is cancelled.
func Mount(ctx context.Context, cfg ControllerConfig) *Controller {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		cfg:    cfg,
		log:    log.With("component", "catalog_controller", "category", cfg.CategorySlug),
		events: make(chan event, 16),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.snap = Snapshot{
		State:           StateIdle,
		Products:        slices.Clone(cfg.InitialProducts),
		Sort:            SortNewest,
		AvailableColors: AvailableColors(cfg.InitialProducts),
	}
	go c.run()
	return c
}

// SetFilter toggles or replaces one filter dimension.
func (c *Controller) SetFilter(dim Dimension, value string) {
	c.send(mutateEvent{apply: func(f Filters, s Sort) (Filters, Sort) {
		return WithFilter(f, dim, value), s
	}})
}

// SetGender replaces the gender view mode; nil shows every audience.
func (c *Controller) SetGender(g *models.Gender) {
	g = clonePtr(g)
	c.send(mutateEvent{apply: func(f Filters, s Sort) (Filters, Sort) {
		return WithGender(f, g), s
	}})
}

// SetPriceRange replaces both price bounds.
func (c *Controller) SetPriceRange(min, max *float64) {
	min, max = clonePtr(min), clonePtr(max)
	c.send(mutateEvent{apply: func(f Filters, s Sort) (Filters, Sort) {
		return WithPriceRange(f, min, max), s
	}})
}

// SetSort changes the listing order.
func (c *Controller) SetSort(sort Sort) {
	c.send(mutateEvent{apply: func(f Filters, _ Sort) (Filters, Sort) {
		return f, sort
	}})
}

// ClearFilters resets facets and price bounds, keeping gender.
func (c *Controller) ClearFilters() {
	c.send(mutateEvent{apply: func(f Filters, s Sort) (Filters, Sort) {
		return Clear(f), s
	}})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSnapshot(c.snap)
}

// Unmount stops the controller. In-flight fetches are cancelled and their
// results discarded. Safe to call more than once.
func (c *Controller) Unmount() {
	c.cancel()
	<-c.done
}

// Done is closed once the controller goroutine has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) send(ev event) {
	select {
	case c.events <- ev:
	case <-c.ctx.Done():
	}
}

func (c *Controller) run() {
	defer close(c.done)
	defer c.fetches.Wait()
	for {
		select {
		case <-c.ctx.Done():
			if c.cancelFetch != nil {
				c.cancelFetch()
			}
			return
		case ev := <-c.events:
			switch ev := ev.(type) {
			case mutateEvent:
				c.handleMutation(ev)
			case resultEvent:
				c.handleResult(ev)
			}
		}
	}
}

func (c *Controller) handleMutation(ev mutateEvent) {
	cur := c.Snapshot()
	filters, sort := ev.apply(cur.Filters, cur.Sort)

	// Any mutation supersedes the in-flight fetch.
	c.seq++
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}

	next := cur
	next.Filters = filters
	next.Sort = sort
	next.ActiveFilters = ActiveCount(filters)
	next.Seq = c.seq

	if filters.IsDefault() && sort == SortNewest {
		next.State = StateIdle
		next.Products = slices.Clone(c.cfg.InitialProducts)
		next.Err = nil
		c.publish(next)
		return
	}

	next.State = StateFetching
	next.Err = nil
	c.publish(next)
	c.startFetch(c.seq, filters, sort)
}

func (c *Controller) startFetch(seq uint64, filters Filters, sort Sort) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.cfg.FetchTimeout > 0 {
		ctx, cancel = context.WithTimeout(c.ctx, c.cfg.FetchTimeout)
	} else {
		ctx, cancel = context.WithCancel(c.ctx)
	}
	c.cancelFetch = cancel

	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		defer cancel()
		products, err := c.fetch(ctx, filters, sort)
		select {
		case c.events <- resultEvent{seq: seq, products: products, err: err}:
		case <-c.ctx.Done():
		}
	}()
}

func (c *Controller) fetch(ctx context.Context, filters Filters, sort Sort) ([]models.Product, error) {
	qs, err := c.cfg.Translator.Translate(ctx, c.cfg.CategorySlug, filters, sort, Page{})
	if err != nil {
		return nil, err
	}
	products, err := c.cfg.Store.Execute(ctx, qs)
	if err != nil {
		return nil, WrapStore("execute", err)
	}
	return products, nil
}

func (c *Controller) handleResult(ev resultEvent) {
	if ev.seq != c.seq {
		metrics.ControllerFetches.WithLabelValues("stale").Inc()
		c.log.Debug("dropping superseded fetch result", "seq", ev.seq, "current", c.seq)
		return
	}
	c.cancelFetch = nil

	next := c.Snapshot()
	if ev.err != nil {
		metrics.ControllerFetches.WithLabelValues("failed").Inc()
		c.log.Error("catalog fetch failed", "seq", ev.seq, "error", ev.err)
		next.State = StateFailed
		next.Err = ev.err
		c.publish(next)
		return
	}

	metrics.ControllerFetches.WithLabelValues("loaded").Inc()
	next.State = StateLoaded
	next.Products = ev.products
	next.Err = nil
	c.publish(next)
}

func (c *Controller) publish(s Snapshot) {
	c.mu.Lock()
	c.snap = s
	c.mu.Unlock()
	if c.cfg.Observer != nil {
		c.cfg.Observer(cloneSnapshot(s))
	}
}

func cloneSnapshot(s Snapshot) Snapshot {
	s.Products = slices.Clone(s.Products)
	s.Filters = s.Filters.Clone()
	s.AvailableColors = slices.Clone(s.AvailableColors)
	return s
}

// AvailableColors returns the colours offered across products, deduplicated
// by name in first-seen order.
func AvailableColors(products []models.Product) []models.Color {
	seen := make(map[string]struct{})
	colors := make([]models.Color, 0)
	for _, p := range products {
		for _, color := range p.Colors {
			if _, ok := seen[color.Name]; ok {
				continue
			}
			seen[color.Name] = struct{}{}
			colors = append(colors, color)
		}
	}
	return colors
}
