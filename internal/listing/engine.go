package listing

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/contentlist/internal/cache"
	"github.com/rshade/contentlist/internal/display"
	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/logging"
	"github.com/rshade/contentlist/internal/pagination"
	"github.com/rshade/contentlist/internal/prefs"
)

// Ticket identifies one fetch. It is issued by BeginFetch and handed back to
// Fetch and Apply.
type Ticket struct {
	Descriptor QueryDescriptor
	Generation uint64
	Epoch      uint64
}

// View is everything a renderer needs to draw the listing.
type View struct {
	State       display.State   `json:"state"        yaml:"state"`
	Items       []Item          `json:"items"        yaml:"items"`
	TotalCount  int             `json:"total_count"  yaml:"total_count"`
	Page        int             `json:"page"         yaml:"page"`
	PageSize    int             `json:"page_size"    yaml:"page_size"`
	Criteria    filter.Criteria `json:"filters"      yaml:"filters"`
	NotFiltered bool            `json:"not_filtered" yaml:"not_filtered"`
	Meta        pagination.Meta `json:"pagination"   yaml:"pagination"`
	// Fetching is true while a newer fetch for the shown descriptor is in flight.
	Fetching bool  `json:"fetching" yaml:"fetching"`
	Err      error `json:"-"        yaml:"-"`
}

// Options configure an Engine.
type Options struct {
	// Cache stores results by descriptor key. Nil disables caching.
	Cache cache.Store
	// CacheNamespace is prefixed onto every cache key. Engines reading
	// different sources through one shared cache must use different
	// namespaces.
	CacheNamespace string
	// DefaultPageSize is used when no page size preference is stored. Zero
	// or a size outside pagination.AllowedPageSizes means
	// pagination.DefaultPageSize.
	DefaultPageSize int
	// Prefs persists the page size. Nil keeps it in memory only.
	Prefs *prefs.Adapter
	// PrefsKey is the page-size preference key; defaults to prefs.PageSizeKey.
	PrefsKey string
	// Logger receives engine logs when no logger is on the call context.
	Logger zerolog.Logger
}

// Engine synchronises filter and page state with a remote Source.
// Its methods are safe to call from multiple goroutines.
type Engine struct {
	mu     sync.Mutex
	source Source
	cache  cache.Store
	// cacheNS scopes cache keys to the source.
	cacheNS string
	flight  singleflight.Group
	logger  zerolog.Logger

	criteria filter.Criteria
	pages    *pagination.State

	// generation counts BeginFetch calls; epoch counts cache invalidations.
	generation   uint64
	epoch        uint64
	requestedKey string

	applied      bool
	appliedKey   string
	appliedGen   uint64
	appliedEpoch uint64
	result       ListResult
	err          error
}

// NewEngine creates an engine with empty filters on page 1 at the persisted
// (or default) page size.
func NewEngine(source Source, opts Options) (*Engine, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	key := opts.PrefsKey
	if key == "" {
		key = prefs.PageSizeKey
	}
	return &Engine{
		source:  source,
		cache:   opts.Cache,
		cacheNS: opts.CacheNamespace,
		logger:  logging.ComponentLogger(opts.Logger, "listing"),
		pages:   pagination.NewState(opts.Prefs, key, opts.DefaultPageSize),
	}, nil
}

// Source returns the engine's source.
func (e *Engine) Source() Source {
	return e.source
}

// Descriptor returns the descriptor for the current state.
func (e *Engine) Descriptor() QueryDescriptor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.descriptorLocked()
}

// Criteria returns a copy of the current filter criteria.
func (e *Engine) Criteria() filter.Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria.Clone()
}

// PageState returns the current page state.
func (e *Engine) PageState() pagination.PageState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pages.Current()
}

// NotFiltered reports whether no filter is active.
func (e *Engine) NotFiltered() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria.NotFiltered()
}

// SetSearchQuery replaces the (already debounced) search text.
// It reports whether the criteria changed; a change resets to page 1.
func (e *Engine) SetSearchQuery(text string) bool {
	return e.updateCriteria("set_search_query", func(c filter.Criteria) (filter.Criteria, bool) {
		return c.WithSearchQuery(text)
	})
}

// ToggleVersion adds or removes a version filter and resets to page 1.
func (e *Engine) ToggleVersion(v string) bool {
	return e.updateCriteria("toggle_version", func(c filter.Criteria) (filter.Criteria, bool) {
		return c.ToggleVersion(v)
	})
}

// ToggleArchitecture adds or removes an architecture filter and resets to page 1.
func (e *Engine) ToggleArchitecture(a string) bool {
	return e.updateCriteria("toggle_architecture", func(c filter.Criteria) (filter.Criteria, bool) {
		return c.ToggleArchitecture(a)
	})
}

// ToggleStatus adds or removes a status filter and resets to page 1.
func (e *Engine) ToggleStatus(s string) bool {
	return e.updateCriteria("toggle_status", func(c filter.Criteria) (filter.Criteria, bool) {
		return c.ToggleStatus(s)
	})
}

// ClearFilters removes every filter and resets to page 1.
func (e *Engine) ClearFilters() bool {
	return e.updateCriteria("clear_filters", func(c filter.Criteria) (filter.Criteria, bool) {
		return c.Cleared()
	})
}

// SetCriteria replaces all criteria at once, as when applying CLI flags.
func (e *Engine) SetCriteria(next filter.Criteria) bool {
	return e.updateCriteria("set_criteria", func(c filter.Criteria) (filter.Criteria, bool) {
		if c.Equal(next) {
			return c, false
		}
		return next.Clone(), true
	})
}

func (e *Engine) updateCriteria(op string, fn func(filter.Criteria) (filter.Criteria, bool)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, changed := fn(e.criteria)
	if !changed {
		return false
	}
	e.criteria = next
	reset := e.pages.ResetPage()

	e.logger.Debug().
		Str("operation", op).
		Bool("page_reset", reset).
		Bool("not_filtered", next.NotFiltered()).
		Msg("filter criteria changed")
	return true
}

// SetPage moves to page n (n >= 1). Pages past the end are the caller's
// responsibility.
func (e *Engine) SetPage(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pages.SetPage(n)
}

// SetPageSize switches to page size n, persists it and moves to newPage.
func (e *Engine) SetPageSize(n, newPage int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.pages.SetPageSize(n, newPage); err != nil {
		return err
	}
	e.logger.Debug().
		Str("operation", "set_page_size").
		Int("page_size", n).
		Int("page", newPage).
		Msg("page size changed")
	return nil
}

// ChangePageSize switches to page size n, keeping the first visible item on
// screen.
func (e *Engine) ChangePageSize(n int) error {
	e.mu.Lock()
	cur := e.pages.Current()
	e.mu.Unlock()
	return e.SetPageSize(n, pagination.RecomputePage(cur.Page, cur.PageSize, n))
}

// BeginFetch issues a ticket for the current descriptor. The view reports
// Loading (or Fetching) until a matching outcome is applied.
func (e *Engine) BeginFetch() Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	d := e.descriptorLocked()
	e.requestedKey = d.Key()
	return Ticket{
		Descriptor: d,
		Generation: e.generation,
		Epoch:      e.epoch,
	}
}

// Fetch returns the result for the ticket's descriptor, from the cache when
// possible. Concurrent fetches of the same descriptor share one remote call.
// It does not touch engine state; pass the outcome to Apply.
func (e *Engine) Fetch(ctx context.Context, t Ticket) (ListResult, error) {
	log := logging.FromContext(ctx)
	key := e.cacheKey(t.Descriptor)

	if res, ok := e.cached(key); ok {
		log.Debug().Ctx(ctx).
			Str("component", "listing").
			Str("operation", "fetch").
			Str("descriptor_key", key).
			Msg("served from cache")
		return res, nil
	}

	flightKey := key + "@" + strconv.FormatUint(t.Epoch, 10)
	v, err, shared := e.flight.Do(flightKey, func() (interface{}, error) {
		res, listErr := e.source.List(ctx, t.Descriptor)
		if listErr != nil {
			return nil, listErr
		}
		e.store(key, t.Epoch, res)
		return res, nil
	})
	if err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "listing").
			Str("operation", "fetch").
			Int("page", t.Descriptor.Page).
			Int("page_size", t.Descriptor.PageSize).
			Err(err).
			Msg("listing fetch failed")
		return ListResult{}, &FetchError{Descriptor: t.Descriptor, Err: err}
	}

	res, _ := v.(ListResult)
	log.Debug().Ctx(ctx).
		Str("component", "listing").
		Str("operation", "fetch").
		Str("descriptor_key", key).
		Bool("shared", shared).
		Int("count", res.TotalCount).
		Int("items", len(res.Items)).
		Msg("listing fetched")
	return res.Clone(), nil
}

// Apply records the outcome of a fetch. Outcomes for a descriptor that is no
// longer current, older than an outcome already applied, or from before a
// delete are dropped; Apply reports whether the outcome was kept.
func (e *Engine) Apply(t Ticket, res ListResult, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := t.Descriptor.Key()
	current := e.descriptorLocked()
	stale := !t.Descriptor.Equal(current) ||
		t.Epoch < e.epoch ||
		(e.applied && e.appliedKey == key && t.Generation < e.appliedGen)
	if stale {
		e.logger.Debug().
			Str("operation", "apply").
			Uint64("generation", t.Generation).
			Int("page", t.Descriptor.Page).
			Int("current_page", current.Page).
			Msg("dropping stale listing outcome")
		return false
	}

	e.applied = true
	e.appliedKey = key
	e.appliedGen = t.Generation
	e.appliedEpoch = t.Epoch
	e.err = err
	if err == nil {
		e.result = res
	} else {
		e.result = ListResult{}
	}
	return true
}

// Refresh fetches the current descriptor and applies the outcome.
func (e *Engine) Refresh(ctx context.Context) (View, error) {
	t := e.BeginFetch()
	res, err := e.Fetch(ctx, t)
	e.Apply(t, res, err)
	return e.Snapshot(), err
}

// Snapshot returns the current view.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := e.descriptorLocked()
	page := e.pages.Current()
	notFiltered := e.criteria.NotFiltered()

	key := d.Key()
	haveCurrent := e.applied && e.appliedKey == key
	isLoading := !haveCurrent
	isError := haveCurrent && e.err != nil
	outdated := e.appliedEpoch < e.epoch ||
		(e.requestedKey == key && e.generation > e.appliedGen)

	v := View{
		Page:        page.Page,
		PageSize:    page.PageSize,
		Criteria:    e.criteria.Clone(),
		NotFiltered: notFiltered,
		Fetching:    haveCurrent && outdated,
	}
	if haveCurrent {
		v.Err = e.err
		if e.err == nil {
			v.Items = e.result.Clone().Items
			v.TotalCount = e.result.TotalCount
		}
	}
	v.State = display.Classify(isLoading, isError, v.TotalCount, notFiltered)
	v.Meta = pagination.NewMeta(page, v.TotalCount)
	return v
}

// DeleteItem deletes uuid through the source. On success it steps back a
// page when the deleted item was alone on the last page and invalidates
// cached results. On failure nothing changes and a *DeleteError is returned.
func (e *Engine) DeleteItem(ctx context.Context, uuid string) error {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	before := e.descriptorLocked()
	totalBefore := 0
	if e.applied && e.appliedKey == before.Key() && e.err == nil {
		totalBefore = e.result.TotalCount
	}
	e.mu.Unlock()

	if err := e.source.Delete(ctx, uuid); err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "listing").
			Str("operation", "delete").
			Str("uuid", uuid).
			Err(err).
			Msg("delete failed")
		return &DeleteError{UUID: uuid, Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// The page only moves if the user is still looking at what was deleted from.
	page := e.pages.Current().Page
	if e.descriptorLocked().Equal(before) {
		page = pagination.AdjustAfterRemoval(before.Page, before.PageSize, totalBefore)
		if err := e.pages.SetPage(page); err != nil {
			return err
		}
	}
	e.invalidateLocked()

	log.Info().Ctx(ctx).
		Str("component", "listing").
		Str("operation", "delete").
		Str("uuid", uuid).
		Int("count_before", totalBefore).
		Int("page_before", before.Page).
		Int("page", page).
		Msg("item deleted")
	return nil
}

// Invalidate drops cached results so the next fetch reaches the source.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.invalidateLocked()
}

func (e *Engine) invalidateLocked() {
	e.epoch++
	if e.cache == nil {
		return
	}
	if err := e.cache.Clear(); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		e.logger.Warn().Str("operation", "invalidate").Err(err).Msg("failed to clear result cache")
	}
}

func (e *Engine) descriptorLocked() QueryDescriptor {
	return BuildQueryDescriptor(e.criteria, e.pages.Current())
}

// cacheKey is the descriptor key within the engine's cache namespace.
func (e *Engine) cacheKey(d QueryDescriptor) string {
	if e.cacheNS == "" {
		return d.Key()
	}
	return e.cacheNS + "-" + d.Key()
}

func (e *Engine) cached(key string) (ListResult, bool) {
	if e.cache == nil {
		return ListResult{}, false
	}
	entry, err := e.cache.Get(key)
	if err != nil {
		return ListResult{}, false
	}
	var res ListResult
	if err = json.Unmarshal(entry.Data, &res); err != nil {
		_ = e.cache.Delete(key)
		return ListResult{}, false
	}
	return res, true
}

// store caches res unless the cache was invalidated since the fetch began.
func (e *Engine) store(key string, epoch uint64, res ListResult) {
	if e.cache == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if epoch != e.epoch {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err = e.cache.Set(key, data); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		e.logger.Debug().Str("operation", "cache_store").Err(err).Msg("failed to cache listing result")
	}
}
