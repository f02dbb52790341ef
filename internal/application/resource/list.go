// Package resource содержит обобщённый список с постраничной загрузкой.
//
// List[T] is a state machine per list instance:
//
//	Idle → Loading → {Success, Failure}
//
// Any change of page, size, sort, query, categoryId or an explicit Refetch
// starts a new fetch cycle. Every cycle gets a generation number; a result is
// applied only when its generation is still the current one and the list is
// not closed. Superseded requests are not cancelled, their results are dropped.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/errmsg"
	"github.com/Haleralex/storefront/internal/pkg/metrics"
	"github.com/Haleralex/storefront/internal/pkg/pagination"
)

// errNilPage is reported when a fetch returns neither a page nor an error.
var errNilPage = errors.New("parse response: empty page")

// Params - параметры запроса списка. Page is zero-based.
type Params struct {
	Page       int
	Size       int
	Sort       string
	Query      string
	CategoryID string
}

// DefaultParams returns page 0 with the default page size.
func DefaultParams() Params {
	return Params{Page: pagination.DefaultPageIndex, Size: pagination.DefaultPageSize}
}

// FetchFunc loads one page for the given params.
type FetchFunc[T any] func(ctx context.Context, params Params) (*dtos.Page[T], error)

// State is an immutable snapshot of a list.
type State[T any] struct {
	Items   []T
	Loading bool
	// Error is the display-ready message of the last failed cycle.
	Error string
	// Err is the raw error behind Error.
	Err        error
	Pagination *dtos.PaginationInfo
	Params     Params
	Generation uint64
}

// Config - настройки списка.
type Config struct {
	// Label names the resource in error messages ("products").
	Label  string
	Params Params
	Logger *slog.Logger
}

// List - список ресурса с постраничной загрузкой.
type List[T any] struct {
	fetch  FetchFunc[T]
	label  string
	logger *slog.Logger

	mu          sync.Mutex
	ctx         context.Context
	state       State[T]
	mounted     bool
	closed      bool
	listeners   map[int]func(State[T])
	nextID      int
	pending     []State[T]
	dispatching bool

	// inflight counts running fetches; idle is signalled when it drops to zero.
	inflight int
	idle     *sync.Cond
}

// NewList creates an idle list. Nothing is fetched until Mount.
func NewList[T any](fetch FetchFunc[T], cfg Config) *List[T] {
	params := cfg.Params
	if params == (Params{}) {
		params = DefaultParams()
	}
	params.Size = pagination.ClampSize(params.Size)
	params.Page = max(params.Page, 0)

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	l := &List[T]{
		fetch:     fetch,
		label:     cfg.Label,
		logger:    log.With("resource", cfg.Label),
		state:     State[T]{Items: []T{}, Params: params},
		listeners: make(map[int]func(State[T])),
	}
	l.idle = sync.NewCond(&l.mu)
	return l
}

// ============================================
// Lifecycle
// ============================================

// Mount starts the first fetch cycle. ctx is passed to every fetch of this
// list; cancelling it aborts requests still in flight.
func (l *List[T]) Mount(ctx context.Context) {
	l.mu.Lock()
	if l.mounted || l.closed {
		l.mu.Unlock()
		return
	}
	l.mounted = true
	l.ctx = ctx
	l.startLocked()
	l.mu.Unlock()

	l.flush()
}

// Close unmounts the list: later results are discarded and listeners are dropped.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	l.mounted = false
	l.listeners = make(map[int]func(State[T]))
	l.pending = nil
}

// Wait blocks until all started fetches have returned. It may run
// concurrently with controls that start new cycles; those are waited for too.
func (l *List[T]) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.inflight > 0 {
		l.idle.Wait()
	}
}

// Subscribe registers fn for every state change and returns the unsubscribe func.
// fn runs outside the list's lock and may call back into the list.
func (l *List[T]) Subscribe(fn func(State[T])) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	}
}

// State returns the current snapshot.
func (l *List[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// ============================================
// Controls
// ============================================

// SetParams replaces the params. A cycle starts only when something changed.
func (l *List[T]) SetParams(p Params) bool {
	return l.update(false, func(cur *Params) { *cur = p })
}

// SetQuery changes the search text and goes back to the first page.
func (l *List[T]) SetQuery(q string) bool {
	return l.update(false, func(p *Params) { p.Query = q; p.Page = 0 })
}

// SetSort changes the sort ("field,asc|desc") and goes back to the first page.
func (l *List[T]) SetSort(sort string) bool {
	return l.update(false, func(p *Params) { p.Sort = sort; p.Page = 0 })
}

// SetSize changes the page size and goes back to the first page.
func (l *List[T]) SetSize(size int) bool {
	return l.update(false, func(p *Params) { p.Size = size; p.Page = 0 })
}

// SetCategory changes the category filter and goes back to the first page.
func (l *List[T]) SetCategory(categoryID string) bool {
	return l.update(false, func(p *Params) { p.CategoryID = categoryID; p.Page = 0 })
}

// SyncPage resynchronizes the page with an externally controlled value.
func (l *List[T]) SyncPage(page int) bool {
	return l.update(false, func(p *Params) { p.Page = page })
}

// Refetch starts a new cycle with unchanged params.
func (l *List[T]) Refetch() {
	l.mu.Lock()
	l.startIfMountedLocked()
	l.mu.Unlock()

	l.flush()
}

// GoToPage moves to page n. It is a no-op when n < 0, when n is past the
// last known page, or when n is the current page.
func (l *List[T]) GoToPage(n int) bool {
	return l.update(true, func(p *Params) { p.Page = n })
}

// NextPage moves forward one page when a next page is known to exist.
func (l *List[T]) NextPage() bool {
	return l.update(true, func(p *Params) {
		if pg := l.state.Pagination; pg != nil && p.Page < pg.TotalPages-1 {
			p.Page++
		}
	})
}

// PrevPage moves back one page unless already on the first.
func (l *List[T]) PrevPage() bool {
	return l.update(true, func(p *Params) {
		if p.Page > 0 {
			p.Page--
		}
	})
}

// update applies mutate to a copy of the params under the lock and starts a
// cycle when the result is valid and different. With bounded set, the page
// must also lie within the last known page count.
func (l *List[T]) update(bounded bool, mutate func(*Params)) bool {
	l.mu.Lock()
	p := l.state.Params
	mutate(&p)
	p.Size = pagination.ClampSize(p.Size)

	if p.Page < 0 || p == l.state.Params {
		l.mu.Unlock()
		return false
	}
	if pg := l.state.Pagination; bounded && pg != nil && p.Page >= pg.TotalPages {
		l.mu.Unlock()
		return false
	}

	l.state.Params = p
	l.startIfMountedLocked()
	l.mu.Unlock()

	l.flush()
	return true
}

// ============================================
// Fetch cycle
// ============================================

func (l *List[T]) startIfMountedLocked() {
	if l.mounted && !l.closed {
		l.startLocked()
	}
}

// startLocked begins a cycle: bump the generation, show loading, fetch in background.
func (l *List[T]) startLocked() {
	l.state.Generation++
	l.state.Loading = true
	l.state.Error = ""
	l.state.Err = nil
	l.publishLocked()

	gen := l.state.Generation
	params := l.state.Params
	ctx := l.ctx

	l.inflight++
	go l.run(ctx, gen, params)
}

// finish marks one fetch as returned and wakes Wait when none are left.
func (l *List[T]) finish() {
	l.mu.Lock()
	l.inflight--
	if l.inflight == 0 {
		l.idle.Broadcast()
	}
	l.mu.Unlock()
}

func (l *List[T]) run(ctx context.Context, gen uint64, params Params) {
	defer l.finish()

	start := time.Now()
	page, err := l.call(ctx, params)
	duration := time.Since(start)

	l.mu.Lock()
	if l.closed || gen != l.state.Generation {
		l.mu.Unlock()
		metrics.RecordFetch(l.label, metrics.OutcomeDiscarded, duration)
		l.logger.Debug("stale result discarded",
			"generation", gen,
			"duration_ms", duration.Milliseconds(),
		)
		return
	}

	l.state.Loading = false
	if err != nil {
		l.state.Items = []T{}
		l.state.Pagination = nil
		l.state.Err = err
		l.state.Error = l.describe(err)
	} else {
		items := page.Items
		if items == nil {
			items = []T{}
		}
		info := page.Info()
		l.state.Items = items
		l.state.Pagination = &info
	}
	l.publishLocked()
	l.mu.Unlock()

	if err != nil {
		metrics.RecordFetch(l.label, metrics.OutcomeFailure, duration)
		l.logger.Warn("fetch failed",
			"generation", gen,
			"page", params.Page,
			"error", err,
		)
	} else {
		metrics.RecordFetch(l.label, metrics.OutcomeSuccess, duration)
		l.logger.Debug("fetch completed",
			"generation", gen,
			"page", params.Page,
			"items", len(page.Items),
			"duration_ms", duration.Milliseconds(),
		)
	}

	l.flush()
}

// call runs the fetch function and turns a panic into a *PanicError.
func (l *List[T]) call(ctx context.Context, params Params) (page *dtos.Page[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, &PanicError{Value: r}
		}
	}()

	page, err = l.fetch(ctx, params)
	if err == nil && page == nil {
		err = errNilPage
	}
	return page, err
}

func (l *List[T]) describe(err error) string {
	var pe *PanicError
	if errors.As(err, &pe) {
		return errmsg.NormalizeRecovered(pe.Value, l.label)
	}
	return errmsg.Normalize(err, l.label)
}

// PanicError is the failure recorded when a fetch function panics.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("fetch panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ============================================
// Notifications
// ============================================

func (l *List[T]) snapshotLocked() State[T] {
	s := l.state
	if s.Pagination != nil {
		info := *s.Pagination
		s.Pagination = &info
	}
	return s
}

// publishLocked queues the current state for listeners.
func (l *List[T]) publishLocked() {
	if len(l.listeners) == 0 {
		return
	}
	l.pending = append(l.pending, l.snapshotLocked())
}

// flush delivers queued snapshots in order. Only one goroutine delivers at a
// time; others leave their snapshots to it.
func (l *List[T]) flush() {
	l.mu.Lock()
	if l.dispatching {
		l.mu.Unlock()
		return
	}
	l.dispatching = true

	for len(l.pending) > 0 {
		batch := l.pending
		l.pending = nil
		listeners := make([]func(State[T]), 0, len(l.listeners))
		for _, fn := range l.listeners {
			listeners = append(listeners, fn)
		}
		l.mu.Unlock()

		for _, s := range batch {
			for _, fn := range listeners {
				fn(s)
			}
		}

		l.mu.Lock()
	}

	l.dispatching = false
	l.mu.Unlock()
}
