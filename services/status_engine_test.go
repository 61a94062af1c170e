package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

func init() {
	utils.InitLogger()
}

// spyStore records every write so tests can assert that rejected
// transitions persist nothing.
type spyStore struct {
	order *models.Order

	updates       []map[string]interface{}
	history       []models.OrderStatus
	notifications []string
	jobBumps      []uint
}

func (s *spyStore) FetchOrder(id string) (*models.Order, error) {
	cp := *s.order
	return &cp, nil
}

func (s *spyStore) UpdateOrder(id string, fields map[string]interface{}) error {
	s.updates = append(s.updates, fields)
	return nil
}

func (s *spyStore) AppendStatusHistory(orderID string, status models.OrderStatus, changedBy *uint, notes string) error {
	s.history = append(s.history, status)
	return nil
}

func (s *spyStore) CreateNotification(userID *uint, title, message string) error {
	s.notifications = append(s.notifications, message)
	return nil
}

func (s *spyStore) IncrementWorkerJobs(workerUserID uint) error {
	s.jobBumps = append(s.jobBumps, workerUserID)
	return nil
}

func orderIn(status models.OrderStatus, workerID *uint) *models.Order {
	return &models.Order{
		ID:       "LAM-TEST-001",
		UserID:   7,
		Status:   status,
		WorkerID: workerID,
	}
}

func uintPtr(v uint) *uint { return &v }

var admin = Actor{UserID: 1, Role: models.RoleAdmin}

func TestIllegalTransitionsPersistNothing(t *testing.T) {
	worker := uintPtr(42)
	assignedWorker := Actor{UserID: 42, Role: models.RoleWorker}

	cases := []struct {
		name  string
		from  models.OrderStatus
		to    models.OrderStatus
		actor Actor
	}{
		{"pending cannot jump to completed", models.StatusPending, models.StatusCompleted, admin},
		{"pending cannot go on_the_way", models.StatusPending, models.StatusOnTheWay, assignedWorker},
		{"assigned cannot skip to completed", models.StatusAssigned, models.StatusCompleted, assignedWorker},
		{"on_the_way cannot skip to completed", models.StatusOnTheWay, models.StatusCompleted, assignedWorker},
		{"completed is terminal", models.StatusCompleted, models.StatusAssigned, admin},
		{"cancelled is terminal", models.StatusCancelled, models.StatusConfirmed, admin},
		{"no backwards move", models.StatusInProgress, models.StatusAssigned, admin},
		{"worker cannot confirm", models.StatusPending, models.StatusConfirmed, assignedWorker},
		{"worker cannot cancel", models.StatusAssigned, models.StatusCancelled, assignedWorker},
		{"customer cannot touch anything", models.StatusPending, models.StatusConfirmed, Actor{UserID: 7, Role: models.RoleCustomer}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &spyStore{order: orderIn(tc.from, worker)}
			engine := NewStatusEngine(store)

			_, err := engine.RequestTransition("LAM-TEST-001", tc.to, tc.actor, "")

			require.ErrorIs(t, err, ErrTransitionRejected)
			assert.Empty(t, store.updates, "rejected transition must not write")
			assert.Empty(t, store.history)
			assert.Empty(t, store.notifications)
		})
	}
}

func TestHappyPathTransitions(t *testing.T) {
	worker := uintPtr(42)
	assignedWorker := Actor{UserID: 42, Role: models.RoleWorker}

	cases := []struct {
		from  models.OrderStatus
		to    models.OrderStatus
		actor Actor
	}{
		{models.StatusPending, models.StatusConfirmed, admin},
		{models.StatusConfirmed, models.StatusAssigned, admin},
		{models.StatusAssigned, models.StatusOnTheWay, assignedWorker},
		{models.StatusOnTheWay, models.StatusInProgress, assignedWorker},
		{models.StatusInProgress, models.StatusCompleted, assignedWorker},
		{models.StatusOnTheWay, models.StatusCancelled, admin},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			store := &spyStore{order: orderIn(tc.from, worker)}
			engine := NewStatusEngine(store)

			order, err := engine.RequestTransition("LAM-TEST-001", tc.to, tc.actor, "ok")

			require.NoError(t, err)
			assert.Equal(t, tc.to, order.Status)
			require.Len(t, store.updates, 1)
			assert.Equal(t, tc.to, store.updates[0]["status"])
			require.Len(t, store.history, 1)
			assert.Equal(t, tc.to, store.history[0])
		})
	}
}

func TestDirectAssignmentSkipsConfirmed(t *testing.T) {
	store := &spyStore{order: orderIn(models.StatusPending, nil)}
	engine := NewStatusEngine(store)

	order, err := engine.AssignWorker("LAM-TEST-001", 42, admin)

	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, order.Status)
	require.NotNil(t, order.WorkerID)
	assert.Equal(t, uint(42), *order.WorkerID)

	require.Len(t, store.updates, 1)
	assert.Equal(t, models.StatusAssigned, store.updates[0]["status"])
	assert.Equal(t, uint(42), store.updates[0]["worker_id"])
}

func TestReassignmentFromAssigned(t *testing.T) {
	store := &spyStore{order: orderIn(models.StatusAssigned, uintPtr(42))}
	engine := NewStatusEngine(store)

	order, err := engine.AssignWorker("LAM-TEST-001", 99, admin)

	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, order.Status)
	assert.Equal(t, uint(99), *order.WorkerID)
}

func TestOnlyAssignedWorkerMayAdvance(t *testing.T) {
	store := &spyStore{order: orderIn(models.StatusAssigned, uintPtr(42))}
	engine := NewStatusEngine(store)

	otherWorker := Actor{UserID: 99, Role: models.RoleWorker}
	_, err := engine.RequestTransition("LAM-TEST-001", models.StatusOnTheWay, otherWorker, "")

	require.ErrorIs(t, err, ErrTransitionRejected)
	assert.Empty(t, store.updates)
}

func TestWorkerWithoutAssignmentRejected(t *testing.T) {
	store := &spyStore{order: orderIn(models.StatusAssigned, nil)}
	engine := NewStatusEngine(store)

	_, err := engine.RequestTransition("LAM-TEST-001", models.StatusOnTheWay, Actor{UserID: 42, Role: models.RoleWorker}, "")

	require.ErrorIs(t, err, ErrTransitionRejected)
	assert.Empty(t, store.updates)
}

func TestCompletionBumpsWorkerJobs(t *testing.T) {
	store := &spyStore{order: orderIn(models.StatusInProgress, uintPtr(42))}
	engine := NewStatusEngine(store)

	_, err := engine.RequestTransition("LAM-TEST-001", models.StatusCompleted, Actor{UserID: 42, Role: models.RoleWorker}, "done")

	require.NoError(t, err)
	assert.Equal(t, []uint{42}, store.jobBumps)
}

func TestCustomerNotifiedOnTransition(t *testing.T) {
	store := &spyStore{order: orderIn(models.StatusPending, nil)}
	engine := NewStatusEngine(store)

	_, err := engine.RequestTransition("LAM-TEST-001", models.StatusConfirmed, admin, "")

	require.NoError(t, err)
	require.NotEmpty(t, store.notifications)
	assert.Contains(t, store.notifications[0], "confirmed")
}
