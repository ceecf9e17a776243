package listing

import (
	"context"
	"sync"
	"time"
)

const defaultSearchDebounce = 300 * time.Millisecond

// Resource describes one backend resource type to the controller: how to
// fetch a page, how to mutate records, and how to extract a record's key.
type Resource[T any] struct {
	Fetch  func(ctx context.Context, q Query) (*Result[T], error)
	Create func(ctx context.Context, data T) error
	Update func(ctx context.Context, key string, data T) error
	Delete func(ctx context.Context, key string) error
	Key    func(row T) string

	SearchDebounce time.Duration
}

// Controller owns the list state for one resource type: current rows,
// query parameters, loading/error status and the exclusive editing slot.
// All accessors are safe for concurrent use; fetches run asynchronously
// and only the most recently issued one may publish its result.
type Controller[T any] struct {
	mu  sync.Mutex
	ctx context.Context
	res Resource[T]

	query   Query
	rows    []T
	total   int64
	loading bool
	lastErr string
	editing *T

	generation  uint64
	searchTimer *time.Timer
	onChange    func()
}

// New builds a controller with page 1 and the given page size. No fetch is
// issued until Refresh or a state change.
func New[T any](ctx context.Context, res Resource[T], pageSize int) *Controller[T] {
	if res.SearchDebounce == 0 {
		res.SearchDebounce = defaultSearchDebounce
	}
	return &Controller[T]{
		ctx: ctx,
		res: res,
		query: Query{
			Page:     1,
			PageSize: pageSize,
			Filters:  make(map[string]any),
		},
	}
}

// OnChange registers a callback invoked after every state transition.
func (c *Controller[T]) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller[T]) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Rows returns the last authoritative row-set.
func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows
}

func (c *Controller[T]) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last fetch failure message, empty when healthy.
func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Query returns a copy of the current list-request state.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// SetFilter updates one named filter, resets to page 1 and issues exactly
// one fetch. A nil value removes the filter.
func (c *Controller[T]) SetFilter(field string, value any) {
	c.mu.Lock()
	if value == nil {
		delete(c.query.Filters, field)
	} else {
		c.query.Filters[field] = value
	}
	c.query.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// SetSearch updates the free-text term and resets to page 1 immediately,
// but delays the fetch by the debounce window so typing does not fire one
// request per keystroke.
func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	c.query.Search = term
	c.query.Page = 1
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.res.SearchDebounce, func() {
		c.mu.Lock()
		c.refreshLocked()
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	c.query.Page = n
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) SetPageSize(n int) {
	c.mu.Lock()
	c.query.PageSize = n
	c.query.Page = 1
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// ToggleSort cycles the clicked column none -> asc -> desc -> none.
// Clicking a different column replaces the active sort entirely.
func (c *Controller[T]) ToggleSort(field string) {
	c.mu.Lock()
	if c.query.SortBy != field {
		c.query.SortBy = field
		c.query.SortOrder = SortAsc
	} else {
		switch c.query.SortOrder {
		case SortAsc:
			c.query.SortOrder = SortDesc
		case SortDesc:
			c.query.SortBy = ""
			c.query.SortOrder = SortNone
		default:
			c.query.SortOrder = SortAsc
		}
	}
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// Refresh issues a fetch for the current query state.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
}

// refreshLocked bumps the request generation and launches the fetch. A
// response only publishes if its generation is still current when it
// arrives, so the last-issued request always wins.
func (c *Controller[T]) refreshLocked() {
	c.generation++
	gen := c.generation
	q := c.query.Clone()
	c.loading = true

	go func() {
		result, err := c.res.Fetch(c.ctx, q)

		c.mu.Lock()
		if gen != c.generation {
			// Superseded while in flight; drop silently.
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			// Keep the last-known-good rows visible.
			c.lastErr = err.Error()
		} else {
			c.lastErr = ""
			c.rows = result.Items
			c.total = result.Total
		}
		c.mu.Unlock()
		c.notify()
	}()
}

// StartEdit copies the row into the editing slot, displacing any prior
// uncommitted edit without warning.
func (c *Controller[T]) StartEdit(row T) {
	c.mu.Lock()
	copied := row
	c.editing = &copied
	c.mu.Unlock()
	c.notify()
}

// CancelEdit clears the slot immediately; no backend call.
func (c *Controller[T]) CancelEdit() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
	c.notify()
}

// Editing returns the record currently in the slot, or nil.
func (c *Controller[T]) Editing() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Create awaits backend confirmation, then refreshes at the current query
// state. The new record lands wherever the active sort and filter place it.
func (c *Controller[T]) Create(data T) error {
	if err := c.res.Create(c.ctx, data); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// Update clears the editing slot only on success; on failure the slot
// stays populated so the user can correct and retry.
func (c *Controller[T]) Update(key string, data T) error {
	if err := c.res.Update(c.ctx, key, data); err != nil {
		return err
	}
	c.mu.Lock()
	c.editing = nil
	c.refreshLocked()
	c.mu.Unlock()
	c.notify()
	return nil
}

// Delete awaits confirmation then refreshes at the current query state.
func (c *Controller[T]) Delete(key string) error {
	if err := c.res.Delete(c.ctx, key); err != nil {
		return err
	}
	c.Refresh()
	return nil
}
