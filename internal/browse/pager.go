package browse

import (
	"context"
	"sync"

	"stayhunt/internal/domain"
)

// State is the fetch lifecycle of one screen's listing.
type State int

const (
	StateIdle State = iota
	StateLoadingFirst
	StateReady
	StateLoadingMore
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingFirst:
		return "loading-first-page"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading-next-page"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Source is the listing backend a Pager fetches from. *stayhunt.Client
// satisfies it.
type Source interface {
	Properties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error)
}

// Snapshot is an immutable view of pager state for rendering.
type Snapshot struct {
	State      State
	Refreshing bool
	Filters    Filters
	Items      []domain.Property
	Page       int
	Total      int
	TotalPages int
	HasMore    bool
	Err        error
}

type fetchKind int

const (
	fetchFirst fetchKind = iota
	fetchMore
	fetchRefresh
)

type pendingRetry struct {
	kind fetchKind
	page int
}

// Pager is the paginated, filtered fetch state machine every screen
// instantiates. Each fetch is tagged with the filter generation it was
// issued under; a response whose generation is stale by the time it arrives
// is discarded, so rapid filter changes resolve last-write-wins regardless
// of network ordering.
//
// Methods block until the fetch settles and are safe for concurrent use;
// callers that need a non-blocking trigger run them in a goroutine and
// observe progress through OnChange.
type Pager struct {
	mu       sync.Mutex
	src      Source
	perPage  int
	onChange func(Snapshot)

	filters    Filters
	gen        uint64
	state      State
	refreshing bool
	page       int
	total      int
	totalPages int
	hasMore    bool
	items      []domain.Property
	err        error
	retry      *pendingRetry
}

// NewPager builds a pager with a screen's default filters. perPage <= 0
// falls back to the API default page size.
func NewPager(src Source, defaults Filters, perPage int) *Pager {
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	return &Pager{src: src, perPage: perPage, filters: defaults, state: StateIdle}
}

// OnChange registers a callback invoked (outside the pager lock) after
// every state transition. Must be set before the first fetch.
func (p *Pager) OnChange(fn func(Snapshot)) { p.onChange = fn }

func (p *Pager) snapshotLocked() Snapshot {
	items := make([]domain.Property, len(p.items))
	copy(items, p.items)
	return Snapshot{
		State:      p.state,
		Refreshing: p.refreshing,
		Filters:    p.filters,
		Items:      items,
		Page:       p.page,
		Total:      p.total,
		TotalPages: p.totalPages,
		HasMore:    p.hasMore,
		Err:        p.err,
	}
}

// Snapshot returns the current state for rendering.
func (p *Pager) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Filters returns a copy of the active filters.
func (p *Pager) Filters() Filters {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

func (p *Pager) notify(s Snapshot) {
	if p.onChange != nil {
		p.onChange(s)
	}
}

// SetFilter mutates the filters, invalidates the accumulated list and
// fetches page 1 under a fresh generation.
func (p *Pager) SetFilter(ctx context.Context, mutate func(*Filters)) {
	p.mu.Lock()
	mutate(&p.filters)
	p.beginFirstLocked(false)
	gen := p.gen
	q := p.filters.Query(1, p.perPage)
	s := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(s)

	p.fetchFirst(ctx, gen, q, false)
}

// Refresh re-fetches page 1 with the current filters, flying the
// refreshing flag instead of the full-page loading state. Ignored while a
// refresh is already in flight.
func (p *Pager) Refresh(ctx context.Context) {
	p.mu.Lock()
	if p.refreshing {
		p.mu.Unlock()
		return
	}
	p.beginFirstLocked(true)
	gen := p.gen
	q := p.filters.Query(1, p.perPage)
	s := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(s)

	p.fetchFirst(ctx, gen, q, true)
}

// beginFirstLocked resets the cursor and opens a new filter generation.
// A refresh keeps the visible items and current state; a filter change
// drops them and shows the full-page loading state.
func (p *Pager) beginFirstLocked(refresh bool) {
	p.gen++
	p.page, p.total, p.totalPages = 0, 0, 0
	p.hasMore = false
	p.err = nil
	p.retry = nil
	if refresh {
		p.refreshing = true
	} else {
		p.items = nil
		p.state = StateLoadingFirst
		p.refreshing = false
	}
}

func (p *Pager) fetchFirst(ctx context.Context, gen uint64, q domain.PropertiesQuery, refresh bool) {
	res, err := p.src.Properties(ctx, q)

	p.mu.Lock()
	if gen != p.gen {
		// Superseded by a newer filter generation; drop the result.
		p.mu.Unlock()
		return
	}
	if refresh {
		p.refreshing = false
	}
	if err != nil {
		// A failed first page clears whatever was on screen.
		p.items = nil
		p.state = StateError
		p.err = err
		p.retry = &pendingRetry{kind: fetchFirst, page: 1}
		if refresh {
			p.retry.kind = fetchRefresh
		}
	} else {
		p.applyPageLocked(res, false)
	}
	s := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(s)
}

// LoadMore fetches the next page and appends it. No-op unless the pager is
// ready with more pages available, which also makes re-entrant triggers
// during an in-flight fetch harmless.
func (p *Pager) LoadMore(ctx context.Context) {
	p.mu.Lock()
	if p.state != StateReady || !p.hasMore {
		p.mu.Unlock()
		return
	}
	gen := p.gen
	next := p.page + 1
	q := p.filters.Query(next, p.perPage)
	p.state = StateLoadingMore
	s := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(s)

	p.fetchMore(ctx, gen, q, next)
}

func (p *Pager) fetchMore(ctx context.Context, gen uint64, q domain.PropertiesQuery, page int) {
	res, err := p.src.Properties(ctx, q)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	if err != nil {
		// Keep the accumulated list; only the failed page is lost.
		p.state = StateError
		p.err = err
		p.retry = &pendingRetry{kind: fetchMore, page: page}
	} else {
		p.applyPageLocked(res, true)
	}
	s := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(s)
}

func (p *Pager) applyPageLocked(res domain.PropertiesPage, appendItems bool) {
	if appendItems {
		p.items = append(p.items, res.Properties...)
	} else {
		p.items = res.Properties
	}
	p.page = res.Page
	p.total = res.Total
	p.totalPages = res.TotalPages
	p.hasMore = res.HasMore()
	p.state = StateReady
	p.err = nil
	p.retry = nil
}

// Retry re-issues the exact request that failed. No-op outside the error
// state.
func (p *Pager) Retry(ctx context.Context) {
	p.mu.Lock()
	if p.state != StateError || p.retry == nil {
		p.mu.Unlock()
		return
	}
	op := *p.retry
	gen := p.gen
	q := p.filters.Query(op.page, p.perPage)
	switch op.kind {
	case fetchMore:
		p.state = StateLoadingMore
	case fetchRefresh:
		p.refreshing = true
		p.state = StateReady
	default:
		p.state = StateLoadingFirst
	}
	p.err = nil
	s := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(s)

	if op.kind == fetchMore {
		p.fetchMore(ctx, gen, q, op.page)
	} else {
		p.fetchFirst(ctx, gen, q, op.kind == fetchRefresh)
	}
}

// Convenience wrappers for the common filter mutations.

func (p *Pager) Search(ctx context.Context, text string) {
	p.SetFilter(ctx, func(f *Filters) { f.Search = text })
}

func (p *Pager) SetSort(ctx context.Context, key domain.SortKey) {
	p.SetFilter(ctx, func(f *Filters) { f.Sort = key })
}

// SelectLeaf applies the location-tree toggle semantics and re-fetches.
func (p *Pager) SelectLeaf(ctx context.Context, location, sub string) {
	p.SetFilter(ctx, func(f *Filters) { f.SelectLeaf(location, sub) })
}

// ClearFilters resets all filters to defaults and re-fetches.
func (p *Pager) ClearFilters(ctx context.Context) {
	p.SetFilter(ctx, func(f *Filters) { f.Clear() })
}
