package services

import (
	"errors"
	"fmt"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

// ErrTransitionRejected means the requested (from, to) edge does not exist
// for the actor's role. Nothing is persisted when it is returned.
var ErrTransitionRejected = errors.New("transition rejected")

// Actor identifies who requested a transition.
type Actor struct {
	UserID uint
	Role   string
}

// OrderWriter is the slice of the order store the engine needs. *store.OrderStore
// satisfies it; tests substitute a spy.
type OrderWriter interface {
	FetchOrder(id string) (*models.Order, error)
	UpdateOrder(id string, fields map[string]interface{}) error
	AppendStatusHistory(orderID string, status models.OrderStatus, changedBy *uint, notes string) error
	CreateNotification(userID *uint, title, message string) error
	IncrementWorkerJobs(workerUserID uint) error
}

// transitions lists every legal edge and the role allowed to trigger it.
// Validation happens before any persistence call; an illegal edge results
// in zero writes. Worker edges additionally require the actor to be the
// assigned worker.
var transitions = map[models.OrderStatus]map[models.OrderStatus]string{
	models.StatusPending: {
		models.StatusConfirmed: models.RoleAdmin,
		models.StatusAssigned:  models.RoleAdmin, // direct assignment skips confirmed
		models.StatusCancelled: models.RoleAdmin,
	},
	models.StatusConfirmed: {
		models.StatusAssigned:  models.RoleAdmin,
		models.StatusCancelled: models.RoleAdmin,
	},
	models.StatusAssigned: {
		models.StatusAssigned:  models.RoleAdmin, // reassignment, idempotent re-entry
		models.StatusOnTheWay:  models.RoleWorker,
		models.StatusCancelled: models.RoleAdmin,
	},
	models.StatusOnTheWay: {
		models.StatusInProgress: models.RoleWorker,
		models.StatusCancelled:  models.RoleAdmin,
	},
	models.StatusInProgress: {
		models.StatusCompleted: models.RoleWorker,
		models.StatusCancelled: models.RoleAdmin,
	},
}

var statusLabels = map[models.OrderStatus]string{
	models.StatusPending:    "pending",
	models.StatusConfirmed:  "confirmed",
	models.StatusAssigned:   "assigned",
	models.StatusOnTheWay:   "on the way",
	models.StatusInProgress: "in progress",
	models.StatusCompleted:  "completed",
	models.StatusCancelled:  "cancelled",
}

// StatusEngine drives the order state machine: validates the edge, persists
// the new status, appends the audit row (best effort) and creates
// notifications. The round-tripped feed event, not the engine, is what
// refreshes subscribed views.
type StatusEngine struct {
	Store OrderWriter
}

func NewStatusEngine(store OrderWriter) *StatusEngine {
	return &StatusEngine{Store: store}
}

// RequestTransition moves an order to a new status on behalf of an actor.
// Returns ErrTransitionRejected (wrapped with detail) before any write when
// the edge is illegal for the actor.
func (e *StatusEngine) RequestTransition(orderID string, to models.OrderStatus, actor Actor, notes string) (*models.Order, error) {
	order, err := e.Store.FetchOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := e.validate(order, to, actor); err != nil {
		return nil, err
	}

	if err := e.Store.UpdateOrder(orderID, map[string]interface{}{"status": to}); err != nil {
		return nil, err
	}
	order.Status = to

	e.recordAndNotify(order, to, actor, notes)

	if to == models.StatusCompleted && order.WorkerID != nil {
		if err := e.Store.IncrementWorkerJobs(*order.WorkerID); err != nil {
			utils.ErrorLogger.Printf("status engine: bump jobs for worker %d: %v", *order.WorkerID, err)
		}
	}

	return order, nil
}

// AssignWorker puts an order into assigned and sets its worker in one
// update. Legal from pending, confirmed, or assigned (reassignment).
func (e *StatusEngine) AssignWorker(orderID string, workerUserID uint, actor Actor) (*models.Order, error) {
	order, err := e.Store.FetchOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := e.validate(order, models.StatusAssigned, actor); err != nil {
		return nil, err
	}

	err = e.Store.UpdateOrder(orderID, map[string]interface{}{
		"status":    models.StatusAssigned,
		"worker_id": workerUserID,
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.StatusAssigned
	order.WorkerID = &workerUserID

	e.recordAndNotify(order, models.StatusAssigned, actor, fmt.Sprintf("assigned to worker %d", workerUserID))

	return order, nil
}

func (e *StatusEngine) validate(order *models.Order, to models.OrderStatus, actor Actor) error {
	edges, ok := transitions[order.Status]
	if !ok {
		return fmt.Errorf("%w: order %s is %s (terminal)", ErrTransitionRejected, order.ID, order.Status)
	}
	role, ok := edges[to]
	if !ok {
		return fmt.Errorf("%w: no edge %s -> %s", ErrTransitionRejected, order.Status, to)
	}
	if role != actor.Role {
		return fmt.Errorf("%w: %s -> %s requires role %s", ErrTransitionRejected, order.Status, to, role)
	}
	if role == models.RoleWorker {
		if order.WorkerID == nil || *order.WorkerID != actor.UserID {
			return fmt.Errorf("%w: only the assigned worker may move order %s", ErrTransitionRejected, order.ID)
		}
	}
	return nil
}

// recordAndNotify appends the audit row and creates the per-role notices.
// Both are best effort: failures are logged, never surfaced, and never roll
// back the status update.
func (e *StatusEngine) recordAndNotify(order *models.Order, to models.OrderStatus, actor Actor, notes string) {
	changedBy := actor.UserID
	if err := e.Store.AppendStatusHistory(order.ID, to, &changedBy, notes); err != nil {
		utils.ErrorLogger.Printf("status engine: history for order %s: %v", order.ID, err)
	}

	customerMsg := fmt.Sprintf("Your order status changed to: %s", statusLabels[to])
	if err := e.Store.CreateNotification(&order.UserID, "Status update", customerMsg); err != nil {
		utils.ErrorLogger.Printf("status engine: notify customer %d: %v", order.UserID, err)
	}

	if order.WorkerID != nil && actor.Role != models.RoleWorker {
		workerMsg := fmt.Sprintf("Order %s was updated", order.ID)
		if err := e.Store.CreateNotification(order.WorkerID, "Job update", workerMsg); err != nil {
			utils.ErrorLogger.Printf("status engine: notify worker %d: %v", *order.WorkerID, err)
		}
	}
}
