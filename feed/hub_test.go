package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

func init() {
	utils.InitLogger()
}

func countingSub(counter *int) func(OrderEvent) {
	return func(OrderEvent) { *counter++ }
}

func TestSubscribeIsIdempotentPerScope(t *testing.T) {
	hub := NewHub()
	scope := models.Scope{Role: models.RoleCustomer, UserID: 7}

	var first, second int
	hub.Subscribe(scope, countingSub(&first), nil)
	hub.Subscribe(scope, countingSub(&second), nil)

	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "A", UserID: 7}})

	assert.Equal(t, 0, first, "replaced subscription must not fire")
	assert.Equal(t, 1, second, "one channel per scope, the later one wins")
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	scope := models.Scope{Role: models.RoleCustomer, UserID: 7}

	var count int
	h := hub.Subscribe(scope, countingSub(&count), nil)
	h.Close()
	h.Close()

	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "A", UserID: 7}})
	assert.Equal(t, 0, count)
}

func TestStaleHandleDoesNotCloseReplacement(t *testing.T) {
	hub := NewHub()
	scope := models.Scope{Role: models.RoleCustomer, UserID: 7}

	var count int
	old := hub.Subscribe(scope, nil, nil)
	hub.Subscribe(scope, countingSub(&count), nil)

	// The first handle is stale; closing it must leave the live channel up.
	old.Close()

	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "A", UserID: 7}})
	assert.Equal(t, 1, count)
}

func TestRelevanceFilter(t *testing.T) {
	hub := NewHub()
	worker := uint(42)

	var customerHits, workerHits, adminHits int
	hub.Subscribe(models.Scope{Role: models.RoleCustomer, UserID: 7}, countingSub(&customerHits), nil)
	hub.Subscribe(models.Scope{Role: models.RoleWorker, UserID: worker}, countingSub(&workerHits), nil)
	hub.Subscribe(models.Scope{Role: models.RoleAdmin}, countingSub(&adminHits), nil)

	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "A", UserID: 7}})
	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "B", UserID: 8, WorkerID: &worker}})
	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "C", UserID: 9}})

	assert.Equal(t, 1, customerHits)
	assert.Equal(t, 1, workerHits)
	assert.Equal(t, 3, adminHits)
}

func TestNilCallbackIsSafe(t *testing.T) {
	hub := NewHub()
	hub.Subscribe(models.Scope{Role: models.RoleAdmin}, nil, nil)

	hub.PublishOrder(OrderEvent{Type: EventOrderInsert, Order: models.Order{ID: "A"}})
	hub.PublishOrder(OrderEvent{Type: EventOrderUpdate, Order: models.Order{ID: "A"}})
}
