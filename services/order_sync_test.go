package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lam3a/rush-backend/feed"
	"github.com/lam3a/rush-backend/models"
)

// fakeSource scripts one response per FetchOrders call. A response func may
// block, which is how tests hold a fetch in flight while events arrive.
type fakeSource struct {
	mu        sync.Mutex
	responses []func() ([]models.Order, error)
	calls     int
}

func (f *fakeSource) FetchOrders(scope models.Scope) ([]models.Order, error) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	fn := f.responses[i]
	f.mu.Unlock()
	return fn()
}

func staticSource(orders ...models.Order) *fakeSource {
	return &fakeSource{responses: []func() ([]models.Order, error){
		func() ([]models.Order, error) { return orders, nil },
	}}
}

func testOrder(id string, userID uint, workerID *uint) models.Order {
	return models.Order{ID: id, UserID: userID, WorkerID: workerID, Status: models.StatusPending}
}

func waitLoaded(t *testing.T, c *OrderSyncController) {
	t.Helper()
	require.Eventually(t, func() bool { return !c.Loading() }, time.Second, 5*time.Millisecond)
}

func TestInitialSnapshotLoads(t *testing.T) {
	hub := feed.NewHub()
	src := staticSource(testOrder("A", 7, nil), testOrder("B", 7, nil))

	c := NewOrderSyncController(src, hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	defer c.Close()
	waitLoaded(t, c)

	orders := c.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "A", orders[0].ID)
	assert.NoError(t, c.Err())
}

func TestDuplicateInsertIgnored(t *testing.T) {
	hub := feed.NewHub()
	c := NewOrderSyncController(staticSource(), hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	defer c.Close()
	waitLoaded(t, c)

	ev := feed.OrderEvent{Type: feed.EventOrderInsert, Order: testOrder("A", 7, nil)}
	hub.PublishOrder(ev)
	hub.PublishOrder(ev)

	assert.Len(t, c.Orders(), 1)
}

func TestUpdateMergesById(t *testing.T) {
	hub := feed.NewHub()
	src := staticSource(testOrder("A", 7, nil), testOrder("B", 7, nil), testOrder("C", 7, nil))

	c := NewOrderSyncController(src, hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	defer c.Close()
	waitLoaded(t, c)

	updated := testOrder("B", 7, nil)
	updated.Status = models.StatusConfirmed
	hub.PublishOrder(feed.OrderEvent{Type: feed.EventOrderUpdate, Order: updated, OldStatus: models.StatusPending})

	orders := c.Orders()
	require.Len(t, orders, 3, "update must merge, not replace the list")
	assert.Equal(t, "A", orders[0].ID)
	assert.Equal(t, models.StatusConfirmed, orders[1].Status)
	assert.Equal(t, "C", orders[2].ID)
}

func TestUpdateOfUnknownIdInserts(t *testing.T) {
	hub := feed.NewHub()
	worker := uint(42)

	c := NewOrderSyncController(staticSource(), hub, models.Scope{Role: models.RoleWorker, UserID: worker})
	c.Start()
	defer c.Close()
	waitLoaded(t, c)

	// An order just assigned to this worker arrives as an update the
	// worker scope has never seen.
	o := testOrder("A", 7, &worker)
	o.Status = models.StatusAssigned
	hub.PublishOrder(feed.OrderEvent{Type: feed.EventOrderUpdate, Order: o, OldStatus: models.StatusConfirmed})

	orders := c.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "A", orders[0].ID)
}

func TestEventsDuringFetchAreNotLost(t *testing.T) {
	hub := feed.NewHub()
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{responses: []func() ([]models.Order, error){
		func() ([]models.Order, error) {
			close(started)
			<-release
			return []models.Order{testOrder("OLD", 7, nil)}, nil
		},
	}}

	c := NewOrderSyncController(src, hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	defer c.Close()
	<-started

	hub.PublishOrder(feed.OrderEvent{Type: feed.EventOrderInsert, Order: testOrder("NEW", 7, nil)})
	close(release)
	waitLoaded(t, c)

	orders := c.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "NEW", orders[0].ID, "buffered event replays on top of the snapshot")
	assert.Equal(t, "OLD", orders[1].ID)
}

func TestStaleFetchDiscarded(t *testing.T) {
	hub := feed.NewHub()
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{responses: []func() ([]models.Order, error){
		func() ([]models.Order, error) {
			close(started)
			<-release
			return []models.Order{testOrder("STALE", 7, nil)}, nil
		},
		func() ([]models.Order, error) {
			return []models.Order{testOrder("FRESH", 7, nil)}, nil
		},
	}}

	c := NewOrderSyncController(src, hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	defer c.Close()
	<-started

	require.NoError(t, c.Refresh())
	close(release)

	// Give the superseded goroutine time to run into the generation check.
	time.Sleep(20 * time.Millisecond)

	orders := c.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "FRESH", orders[0].ID, "older fetch must not overwrite a newer one")
}

func TestFetchErrorKeepsLastGoodList(t *testing.T) {
	hub := feed.NewHub()
	boom := errors.New("db down")
	src := &fakeSource{responses: []func() ([]models.Order, error){
		func() ([]models.Order, error) { return []models.Order{testOrder("A", 7, nil)}, nil },
		func() ([]models.Order, error) { return nil, boom },
	}}

	c := NewOrderSyncController(src, hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	defer c.Close()
	waitLoaded(t, c)

	err := c.Refresh()
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, c.Err(), boom)
	assert.Len(t, c.Orders(), 1, "error must not blank the list")
}

func TestScopeFiltering(t *testing.T) {
	hub := feed.NewHub()
	worker := uint(42)

	customerCtl := NewOrderSyncController(staticSource(), hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	workerCtl := NewOrderSyncController(staticSource(), hub, models.Scope{Role: models.RoleWorker, UserID: worker})
	adminCtl := NewOrderSyncController(staticSource(), hub, models.Scope{Role: models.RoleAdmin})
	for _, ctl := range []*OrderSyncController{customerCtl, workerCtl, adminCtl} {
		ctl.Start()
		defer ctl.Close()
		waitLoaded(t, ctl)
	}

	// Unassigned customer order: customer and admin see it, worker does not.
	hub.PublishOrder(feed.OrderEvent{Type: feed.EventOrderInsert, Order: testOrder("A", 7, nil)})
	assert.Len(t, customerCtl.Orders(), 1)
	assert.Len(t, adminCtl.Orders(), 1)
	assert.Empty(t, workerCtl.Orders())

	// Another customer's order assigned to the worker.
	hub.PublishOrder(feed.OrderEvent{Type: feed.EventOrderInsert, Order: testOrder("B", 8, &worker)})
	assert.Len(t, customerCtl.Orders(), 1)
	assert.Len(t, workerCtl.Orders(), 1)
	assert.Len(t, adminCtl.Orders(), 2)
}

func TestCloseIsIdempotentAndFinal(t *testing.T) {
	hub := feed.NewHub()
	c := NewOrderSyncController(staticSource(), hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	waitLoaded(t, c)

	c.Close()
	c.Close()

	hub.PublishOrder(feed.OrderEvent{Type: feed.EventOrderInsert, Order: testOrder("A", 7, nil)})
	assert.Empty(t, c.Orders(), "events after close must not mutate state")
}

func TestCloseDuringFetchDiscardsResult(t *testing.T) {
	hub := feed.NewHub()
	started := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{responses: []func() ([]models.Order, error){
		func() ([]models.Order, error) {
			close(started)
			<-release
			return []models.Order{testOrder("LATE", 7, nil)}, nil
		},
	}}

	c := NewOrderSyncController(src, hub, models.Scope{Role: models.RoleCustomer, UserID: 7})
	c.Start()
	<-started
	c.Close()
	close(release)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, c.Orders())
}
