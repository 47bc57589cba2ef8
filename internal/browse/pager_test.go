package browse_test

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"stayhunt/internal/browse"
	"stayhunt/internal/domain"
)

// scriptedSource serves pages out of a fixed dataset, optionally blocking
// individual requests on a gate so tests can reorder response arrival.
type scriptedSource struct {
	mu    sync.Mutex
	rows  map[string][]domain.Property // keyed by search text ("" = all)
	gates map[string]chan struct{}     // block requests for this search until closed
	fail  map[string]error             // fail requests for this search
	calls int32
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		rows:  map[string][]domain.Property{},
		gates: map[string]chan struct{}{},
		fail:  map[string]error{},
	}
}

func (s *scriptedSource) addRows(search string, names ...string) {
	for _, n := range names {
		s.rows[search] = append(s.rows[search], domain.Property{HomestayName: n, Location: "Dooars"})
	}
}

func (s *scriptedSource) Properties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	atomic.AddInt32(&s.calls, 1)

	search := ""
	if q.Search != nil {
		search = *q.Search
	}

	s.mu.Lock()
	gate := s.gates[search]
	failErr := s.fail[search]
	rows := s.rows[search]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.PropertiesPage{}, ctx.Err()
		}
	}
	if failErr != nil {
		return domain.PropertiesPage{}, failErr
	}

	total := len(rows)
	totalPages := (total + q.PerPage - 1) / q.PerPage
	start := (q.Page - 1) * q.PerPage
	if start > total {
		start = total
	}
	end := start + q.PerPage
	if end > total {
		end = total
	}
	items := make([]domain.Property, end-start)
	copy(items, rows[start:end])
	return domain.PropertiesPage{
		Properties: items,
		Total:      total,
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalPages: totalPages,
	}, nil
}

func (s *scriptedSource) callCount() int32 { return atomic.LoadInt32(&s.calls) }

func names(items []domain.Property) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.HomestayName
	}
	return out
}

func TestPager_FirstPageThenLoadMoreAccumulates(t *testing.T) {
	src := newScriptedSource()
	src.addRows("", "a", "b", "c", "d", "e")
	p := browse.NewPager(src, browse.Filters{}, 2)
	ctx := context.Background()

	p.SetFilter(ctx, func(*browse.Filters) {})
	s := p.Snapshot()
	if s.State != browse.StateReady || len(s.Items) != 2 || !s.HasMore {
		t.Fatalf("after first page: %+v", s)
	}

	p.LoadMore(ctx)
	p.LoadMore(ctx)
	s = p.Snapshot()
	if len(s.Items) != 5 {
		t.Fatalf("expected 5 accumulated items, got %v", names(s.Items))
	}
	want := []string{"a", "b", "c", "d", "e"}
	for i, n := range names(s.Items) {
		if n != want[i] {
			t.Fatalf("order lost: %v", names(s.Items))
		}
	}
	if s.HasMore {
		t.Fatalf("hasMore should be false at page %d/%d", s.Page, s.TotalPages)
	}
}

func TestPager_LoadMoreIsNoOpWhenExhausted(t *testing.T) {
	src := newScriptedSource()
	src.addRows("", "a", "b")
	p := browse.NewPager(src, browse.Filters{}, 10)
	ctx := context.Background()

	p.SetFilter(ctx, func(*browse.Filters) {})
	before := src.callCount()

	p.LoadMore(ctx)
	p.LoadMore(ctx)
	if got := src.callCount(); got != before {
		t.Fatalf("loadMore with hasMore=false issued %d extra calls", got-before)
	}
	s := p.Snapshot()
	if s.State != browse.StateReady || len(s.Items) != 2 {
		t.Fatalf("state changed by no-op loadMore: %+v", s)
	}
}

func TestPager_StaleGenerationDiscarded(t *testing.T) {
	src := newScriptedSource()
	src.addRows("old", "stale-1", "stale-2")
	src.addRows("new", "fresh-1")

	gate := make(chan struct{})
	src.gates["old"] = gate

	p := browse.NewPager(src, browse.Filters{}, 10)
	ctx := context.Background()

	// First filter's fetch hangs on the gate; second filter completes
	// immediately. Releasing the gate afterwards delivers the stale
	// response last, which must be discarded.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Search(ctx, "old")
	}()

	// Wait until the slow fetch is parked on the gate.
	for src.callCount() == 0 {
		runtime.Gosched()
	}

	p.Search(ctx, "new")
	close(gate)
	wg.Wait()

	s := p.Snapshot()
	if got := names(s.Items); len(got) != 1 || got[0] != "fresh-1" {
		t.Fatalf("stale results overwrote newer filter: %v", got)
	}
	if s.Filters.Search != "new" {
		t.Fatalf("filters clobbered: %+v", s.Filters)
	}
}

func TestPager_FailedFirstPageClearsAndRetryRecovers(t *testing.T) {
	src := newScriptedSource()
	src.addRows("", "a", "b", "c")
	p := browse.NewPager(src, browse.Filters{}, 10)
	ctx := context.Background()

	p.SetFilter(ctx, func(*browse.Filters) {})
	if len(p.Snapshot().Items) != 3 {
		t.Fatalf("setup fetch failed")
	}

	boom := errors.New("boom")
	src.mu.Lock()
	src.fail[""] = boom
	src.mu.Unlock()

	p.Refresh(ctx)
	s := p.Snapshot()
	if s.State != browse.StateError || !errors.Is(s.Err, boom) {
		t.Fatalf("expected error state, got %+v", s)
	}
	if len(s.Items) != 0 {
		t.Fatalf("failed first page must clear previous results, got %v", names(s.Items))
	}
	if s.Refreshing {
		t.Fatalf("refreshing flag stuck after failure")
	}

	src.mu.Lock()
	delete(src.fail, "")
	src.mu.Unlock()

	p.Retry(ctx)
	s = p.Snapshot()
	if s.State != browse.StateReady || len(s.Items) != 3 {
		t.Fatalf("retry did not recover: %+v", s)
	}
}

func TestPager_FailedNextPageKeepsAccumulated(t *testing.T) {
	src := newScriptedSource()
	src.addRows("", "a", "b", "c", "d")
	p := browse.NewPager(src, browse.Filters{}, 2)
	ctx := context.Background()

	p.SetFilter(ctx, func(*browse.Filters) {})

	boom := errors.New("boom")
	src.mu.Lock()
	src.fail[""] = boom
	src.mu.Unlock()

	p.LoadMore(ctx)
	s := p.Snapshot()
	if s.State != browse.StateError {
		t.Fatalf("expected error state, got %v", s.State)
	}
	if got := names(s.Items); len(got) != 2 || got[0] != "a" {
		t.Fatalf("failed next page must keep page 1, got %v", got)
	}

	src.mu.Lock()
	delete(src.fail, "")
	src.mu.Unlock()

	p.Retry(ctx)
	s = p.Snapshot()
	if s.State != browse.StateReady || len(s.Items) != 4 {
		t.Fatalf("retry of next page did not append: %v", names(s.Items))
	}
}

func TestPager_FilterChangeResetsPagination(t *testing.T) {
	src := newScriptedSource()
	src.addRows("", "a", "b", "c", "d")
	src.addRows("x", "x-only")
	p := browse.NewPager(src, browse.Filters{}, 2)
	ctx := context.Background()

	p.SetFilter(ctx, func(*browse.Filters) {})
	p.LoadMore(ctx)
	if len(p.Snapshot().Items) != 4 {
		t.Fatalf("setup")
	}

	p.Search(ctx, "x")
	s := p.Snapshot()
	if got := names(s.Items); len(got) != 1 || got[0] != "x-only" {
		t.Fatalf("stale items survived filter change: %v", got)
	}
	if s.Page != 1 || s.HasMore {
		t.Fatalf("pagination not reset: page=%d hasMore=%v", s.Page, s.HasMore)
	}
}

func TestPager_SubLocationToggle(t *testing.T) {
	src := newScriptedSource()
	src.addRows("")
	p := browse.NewPager(src, browse.Filters{}, 10)
	ctx := context.Background()

	p.SelectLeaf(ctx, "Dooars", "Lataguri")
	f := p.Filters()
	if f.Location != "Dooars" || f.SubLocation != "Lataguri" {
		t.Fatalf("leaf select: %+v", f)
	}

	// Switching directly to a sibling leaf keeps it simple: no deselect
	// round-trip required.
	p.SelectLeaf(ctx, "Dooars", "Chalsa")
	f = p.Filters()
	if f.SubLocation != "Chalsa" {
		t.Fatalf("sibling switch: %+v", f)
	}

	// Re-selecting the active leaf clears the sub-location only.
	p.SelectLeaf(ctx, "Dooars", "Chalsa")
	f = p.Filters()
	if f.Location != "Dooars" || f.SubLocation != "" {
		t.Fatalf("toggle clear: %+v", f)
	}
}

func TestPager_NotifiesOnTransitions(t *testing.T) {
	src := newScriptedSource()
	src.addRows("", "a")
	p := browse.NewPager(src, browse.Filters{}, 10)

	var states []browse.State
	p.OnChange(func(s browse.Snapshot) { states = append(states, s.State) })

	p.SetFilter(context.Background(), func(*browse.Filters) {})
	if len(states) != 2 || states[0] != browse.StateLoadingFirst || states[1] != browse.StateReady {
		t.Fatalf("unexpected transition sequence: %v", states)
	}
}
