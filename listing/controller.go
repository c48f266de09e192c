// Package listing implements the paginated, filtered, sortable list
// pattern shared by every entity page. One Controller instance owns the
// query state and load lifecycle of one listing; instances are mutually
// independent.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stackradar/console/radar"
)

// State is the load state of a listing.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadFailed:
		return "load_failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Loader fetches one page for the given query. Bound per entity when the
// controller is constructed.
type Loader[T any] func(ctx context.Context, q Query) (*radar.Page[T], error)

// Controller owns the query state, pagination, sorting and reload logic
// for one entity's listing. Mutators change the query only; Load performs
// the fetch. Concurrent Loads are last-write-wins: a superseded load is
// cancelled and its response, should it still arrive, is discarded.
type Controller[T any] struct {
	mu      sync.Mutex
	query   Query
	state   State
	result  *radar.Page[T]
	loadErr error

	gen    uint64
	cancel context.CancelFunc

	loader Loader[T]
	log    zerolog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption[T any] func(*Controller[T])

// WithLogger sets the controller logger.
func WithLogger[T any](log zerolog.Logger) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.log = log
	}
}

// WithInitialQuery overrides the starting query (e.g. default sort column).
func WithInitialQuery[T any](q Query) ControllerOption[T] {
	return func(c *Controller[T]) {
		c.query = q
	}
}

// NewController creates a listing controller bound to loader.
func NewController[T any](loader Loader[T], options ...ControllerOption[T]) (*Controller[T], error) {
	if loader == nil {
		return nil, errors.New("[NewController] loader is required")
	}
	c := &Controller[T]{
		loader: loader,
		state:  Idle,
		query: Query{
			Page:      1,
			PageSize:  PageSizes[0],
			SortBy:    "created_at",
			SortOrder: SortDesc,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Query returns a copy of the current query state.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// State returns the current load state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the last successfully loaded page, which stays visible
// through later failures. Nil until the first successful load.
func (c *Controller[T]) Result() *radar.Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the retained load error when state is LoadFailed.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// TotalPages reports the page count of the last result, applying the
// ceil(total/pageSize) fallback when the backend omitted total_pages.
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return 0
	}
	return c.result.PageCount()
}

// SetPage changes the page without touching any other query field. The
// value is not clamped: the server is the authority on bounds and UI
// affordances are expected to disable out-of-range navigation.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Page = page
}

// SetPageSize changes the page size and resets to page 1.
func (c *Controller[T]) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.PageSize = size
	c.query.Page = 1
}

// SetSearch changes the free-text filter and resets to page 1.
func (c *Controller[T]) SetSearch(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query.Search = q
	c.query.Page = 1
}

// SetFilter changes one entity-specific filter and resets to page 1. An
// empty value clears the filter from outgoing requests.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = c.query.withFilter(key, value)
	c.query.Page = 1
}

// ToggleSort applies the column-header click semantics: the active column
// flips between asc and desc, a new column becomes active ascending.
// Resets to page 1.
func (c *Controller[T]) ToggleSort(column string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.query.SortBy == column {
		if c.query.SortOrder == SortAsc {
			c.query.SortOrder = SortDesc
		} else {
			c.query.SortOrder = SortAsc
		}
	} else {
		c.query.SortBy = column
		c.query.SortOrder = SortAsc
	}
	c.query.Page = 1
}

// Load fetches the current query's page. Starting a Load supersedes any
// in-flight one: the older request is cancelled and its response, if it
// still arrives, is discarded rather than applied. On failure the previous
// result remains visible and the error is retained.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	q := c.query
	c.state = Loading
	c.mu.Unlock()

	result, err := c.loader(loadCtx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// A newer load superseded this one.
		cancel()
		return nil
	}
	c.cancel = nil
	cancel()

	if err != nil {
		c.state = LoadFailed
		c.loadErr = err
		c.log.Warn().Err(err).Int("page", q.Page).Msg("listing load failed")
		return err
	}

	c.state = Loaded
	c.loadErr = nil
	c.result = result
	return nil
}

// Mutate runs one create/update/delete effect and, on success, reloads the
// listing with the current query. Deleting the last item of a non-first
// page intentionally reloads the same page even if it comes back empty.
func (c *Controller[T]) Mutate(ctx context.Context, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}
	return c.Load(ctx)
}
