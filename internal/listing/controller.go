package listing

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dan/atelier/internal/backend"
	"github.com/dan/atelier/internal/models"
)

// Phase is the listing state machine's current state.
type Phase int

const (
	Idle Phase = iota
	Loading
	Populated
	Empty
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Capabilities unifies the two dashboard variants: one with pagination and
// delete actions, one without. Templates and handlers consult these flags
// instead of maintaining parallel controllers.
type Capabilities struct {
	Pagination bool
	Delete     bool
}

// State is the controller's full query/result state. It is owned by the
// controller and handed out by value, never mutated by callers.
type State struct {
	Phase         Phase
	Customers     []models.Customer
	Page          int // zero-based
	Size          int
	Query         string
	TotalPages    int
	TotalElements int
}

// Fetcher issues the paginated listing request. Implemented by
// *backend.Client.
type Fetcher interface {
	ListCustomers(ctx context.Context, q backend.ListQuery) (*models.CustomerPage, error)
}

// Config sets the controller's initial page size, search debounce, and
// capability flags. Zero values fall back to the defaults.
type Config struct {
	PageSize int
	Debounce time.Duration
	Caps     Capabilities
}

const (
	defaultPageSize = 10
	defaultDebounce = 300 * time.Millisecond
)

// Controller owns the pagination/search state and reconciles it with server
// responses. Every mutation elsewhere in the dashboard funnels back through
// Refresh: the list is always re-fetched whole, never patched incrementally.
//
// Each fetch is tagged with a monotonic counter and its predecessor's context
// is cancelled; a completion whose tag is no longer the latest is discarded,
// so out-of-order responses can never clobber a newer result.
type Controller struct {
	fetch    Fetcher
	caps     Capabilities
	debounce time.Duration

	mu       sync.Mutex
	st       State
	selected int64 // selected customer id, 0 when none
	timer    *time.Timer
	seq      uint64
	cancel   context.CancelFunc
	waiters  []chan State
}

// NewController creates a controller in the Idle state. Nothing is fetched
// until the first operation.
func NewController(fetch Fetcher, cfg Config) *Controller {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	return &Controller{
		fetch:    fetch,
		caps:     cfg.Caps,
		debounce: cfg.Debounce,
		st:       State{Phase: Idle, Size: cfg.PageSize},
	}
}

// Caps returns the controller's capability flags.
func (c *Controller) Caps() Capabilities { return c.caps }

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// SearchInput records a keystroke in the search field and schedules a
// debounced re-query: the fetch fires only after a quiet period with no
// further input, resets the page to zero, and uses the final text. The
// returned channel resolves with the state after the induced fetch settles.
func (c *Controller) SearchInput(q string) <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.subscribeLocked()
	c.st.Query = q
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.st.Page = 0
		c.startFetchLocked()
	})
	return ch
}

// SearchSubmit bypasses the debounce (Enter in the search field) and queries
// immediately, also resetting the page to zero.
func (c *Controller) SearchSubmit(q string) <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.subscribeLocked()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.st.Query = q
	c.st.Page = 0
	c.startFetchLocked()
	return ch
}

// SetPageSize changes the page size and resets to the first page: page
// boundaries are meaningless once the per-page element count changes. A
// non-positive size is ignored.
func (c *Controller) SetPageSize(n int) <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 {
		return resolved(c.st)
	}
	ch := c.subscribeLocked()
	c.st.Size = n
	c.st.Page = 0
	c.startFetchLocked()
	return ch
}

// SetPage navigates to the target page, clamped to the valid range. It does
// not reset to zero. Navigating to the current page is inert.
func (c *Controller) SetPage(p int) <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := ClampPage(p, c.st.TotalPages)
	if target == c.st.Page && c.st.Phase != Idle {
		return resolved(c.st)
	}
	ch := c.subscribeLocked()
	c.st.Page = target
	c.startFetchLocked()
	return ch
}

// Refresh re-fetches the list with the current query state. Called after
// every successful create/update/delete and after imports.
func (c *Controller) Refresh() <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.subscribeLocked()
	c.startFetchLocked()
	return ch
}

// Select remembers a customer by identity only; the record itself is always
// re-resolved against the freshest fetched list.
func (c *Controller) Select(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
}

// ClearSelection forgets the selected customer.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = 0
}

// Selected resolves the selected customer against the current list. It
// returns nil when nothing is selected or the customer is no longer present.
func (c *Controller) Selected() *models.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == 0 {
		return nil
	}
	for i := range c.st.Customers {
		if c.st.Customers[i].ID == c.selected {
			cust := c.st.Customers[i]
			return &cust
		}
	}
	return nil
}

// ── Internals ───────────────────────────────────────────────────────────

// subscribeLocked registers a waiter resolved at the next settle.
func (c *Controller) subscribeLocked() <-chan State {
	ch := make(chan State, 1)
	c.waiters = append(c.waiters, ch)
	return ch
}

func resolved(st State) <-chan State {
	ch := make(chan State, 1)
	ch <- st
	return ch
}

// startFetchLocked supersedes any in-flight fetch and launches a new one.
func (c *Controller) startFetchLocked() {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.seq++
	tag := c.seq
	c.st.Phase = Loading

	q := backend.ListQuery{Page: c.st.Page, Size: c.st.Size, Search: c.st.Query}
	go c.runFetch(ctx, tag, q)
}

func (c *Controller) runFetch(ctx context.Context, tag uint64, q backend.ListQuery) {
	page, err := c.fetch.ListCustomers(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if tag != c.seq {
		// A newer fetch superseded this one while it was in flight.
		return
	}

	if err != nil {
		// Presented to the operator exactly like an empty result; the
		// reason is only logged.
		log.Printf("[listing] fetch page=%d size=%d q=%q: %v", q.Page, q.Size, q.Search, err)
		c.st.Phase = Failed
		c.st.Customers = nil
	} else {
		c.st.Customers = page.Result
		c.st.TotalPages = page.TotalPages
		if c.st.TotalPages == 0 && page.TotalElements > 0 {
			c.st.TotalPages = TotalPagesFor(page.TotalElements, c.st.Size)
		}
		c.st.TotalElements = page.TotalElements
		if len(page.Result) == 0 {
			c.st.Phase = Empty
		} else {
			c.st.Phase = Populated
		}
	}
	c.notifyLocked()
}

// notifyLocked resolves every waiter with the settled state.
func (c *Controller) notifyLocked() {
	for _, ch := range c.waiters {
		ch <- c.st
	}
	c.waiters = nil
}
