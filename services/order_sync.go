package services

import (
	"sync"

	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
)

// OrderSource is the read slice of the order store the sync controller
// needs. *store.OrderStore satisfies it; tests substitute a fake.
type OrderSource interface {
	FetchOrders(scope models.Scope) ([]models.Order, error)
}

// OrderSyncController owns the live, ordered in-memory order list for one
// scope. It loads an initial snapshot, subscribes to the change feed, and
// reconciles events into the list by id. Reconciliation rules:
//
//   - insert: prepend unless the id is already present (duplicate delivery)
//   - update: replace the entry matched by id; an unknown id is treated as
//     an insert, covering orders that just became relevant to the scope
//     (e.g. a worker order gaining worker_id)
//
// Events arriving while a fetch is in flight are buffered and replayed on
// top of the snapshot, so a stale snapshot can never overwrite a newer
// event. A generation counter makes sure only the latest fetch's result is
// honored, and Close guards against any state mutation afterwards.
type OrderSyncController struct {
	source OrderSource
	hub    *feed.Hub
	scope  models.Scope

	mu       sync.Mutex
	orders   []models.Order
	loading  bool
	err      error
	closed   bool
	fetching bool
	fetchGen uint64
	buffer   []feed.OrderEvent
	handle   *feed.Handle
}

func NewOrderSyncController(source OrderSource, hub *feed.Hub, scope models.Scope) *OrderSyncController {
	return &OrderSyncController{
		source: source,
		hub:    hub,
		scope:  scope,
	}
}

// Start subscribes to the feed and kicks off the initial fetch in the
// background. Subscription happens first so no event in the fetch window
// is lost.
func (c *OrderSyncController) Start() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.handle == nil {
		c.handle = c.hub.Subscribe(c.scope, c.onInsert, c.onUpdate)
	}
	c.mu.Unlock()

	go c.fetch()
}

// Refresh re-syncs the list from the store. It is the recovery path when
// the feed goes stale; there is no automatic reconnection.
func (c *OrderSyncController) Refresh() error {
	return c.fetch()
}

func (c *OrderSyncController) fetch() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.fetchGen++
	gen := c.fetchGen
	c.loading = true
	c.fetching = true
	c.buffer = nil
	c.mu.Unlock()

	orders, err := c.source.FetchOrders(c.scope)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.fetchGen {
		// Superseded by a newer fetch, or closed mid-flight. Discard.
		return nil
	}
	c.fetching = false
	c.loading = false
	if err != nil {
		// Keep the last known good list rather than blanking it.
		c.err = err
		c.buffer = nil
		return err
	}
	c.err = nil
	c.orders = orders
	for _, ev := range c.buffer {
		c.applyLocked(ev)
	}
	c.buffer = nil
	return nil
}

func (c *OrderSyncController) onInsert(ev feed.OrderEvent) {
	c.onEvent(ev)
}

func (c *OrderSyncController) onUpdate(ev feed.OrderEvent) {
	c.onEvent(ev)
}

func (c *OrderSyncController) onEvent(ev feed.OrderEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.fetching {
		c.buffer = append(c.buffer, ev)
	}
	c.applyLocked(ev)
}

func (c *OrderSyncController) applyLocked(ev feed.OrderEvent) {
	idx := c.indexOfLocked(ev.Order.ID)
	switch ev.Type {
	case feed.EventOrderInsert:
		if idx >= 0 {
			return
		}
		c.orders = append([]models.Order{ev.Order}, c.orders...)
	case feed.EventOrderUpdate:
		if idx >= 0 {
			c.orders[idx] = ev.Order
			return
		}
		// Newly relevant to this scope; treat as an insert.
		c.orders = append([]models.Order{ev.Order}, c.orders...)
	}
}

func (c *OrderSyncController) indexOfLocked(id string) int {
	for i := range c.orders {
		if c.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// Orders returns a copy of the current list, newest first.
func (c *OrderSyncController) Orders() []models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *OrderSyncController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *OrderSyncController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// SetOrders replaces the list for optimistic local mutation. The next feed
// event or Refresh remains the source of truth.
func (c *OrderSyncController) SetOrders(orders []models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.orders = orders
}

// Close unsubscribes and discards any in-flight results. Idempotent.
func (c *OrderSyncController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	handle := c.handle
	c.handle = nil
	c.mu.Unlock()

	if handle != nil {
		handle.Close()
	}
}
