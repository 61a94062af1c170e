package feed

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lam3a/rush-backend/models"
	"github.com/lam3a/rush-backend/utils"
)

// Event types delivered to websocket clients.
const (
	EventOrderInsert  = "order_insert"
	EventOrderUpdate  = "order_update"
	EventNotification = "notification"
)

// OrderEvent is one change-feed notification. Order is the full new row
// with joins loaded; OldStatus carries the pre-update status on updates so
// subscribers can diff without a second fetch.
type OrderEvent struct {
	Type      string
	Order     models.Order
	OldStatus models.OrderStatus
}

// Message is the wire envelope sent to websocket clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type subscription struct {
	id       string
	scope    models.Scope
	onInsert func(OrderEvent)
	onUpdate func(OrderEvent)
}

// Hub fans order change events out to in-process subscribers (one logical
// channel per scope key) and to connected websocket clients. Events whose
// order is not relevant to a subscriber's scope are dropped silently.
type Hub struct {
	mu      sync.Mutex
	subs    map[string]*subscription
	clients map[*websocket.Conn]models.Scope
}

func NewHub() *Hub {
	return &Hub{
		subs:    make(map[string]*subscription),
		clients: make(map[*websocket.Conn]models.Scope),
	}
}

// Handle detaches a subscription. Close is idempotent and safe after the
// channel is already gone.
type Handle struct {
	hub *Hub
	key string
	id  string
}

func (h *Handle) Close() {
	if h == nil || h.hub == nil {
		return
	}
	h.hub.mu.Lock()
	defer h.hub.mu.Unlock()
	if sub, ok := h.hub.subs[h.key]; ok && sub.id == h.id {
		delete(h.hub.subs, h.key)
	}
}

// Subscribe opens the logical channel for a scope. A second call with the
// same scope key does not open a duplicate channel; it takes over the
// existing one.
func (h *Hub) Subscribe(scope models.Scope, onInsert, onUpdate func(OrderEvent)) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscription{
		id:       uuid.NewString(),
		scope:    scope,
		onInsert: onInsert,
		onUpdate: onUpdate,
	}
	h.subs[scope.Key()] = sub
	return &Handle{hub: h, key: scope.Key(), id: sub.id}
}

// PublishOrder delivers an event to every relevant subscriber and websocket
// client. Callbacks run outside the hub lock.
func (h *Hub) PublishOrder(ev OrderEvent) {
	h.mu.Lock()
	var targets []*subscription
	for _, sub := range h.subs {
		if sub.scope.Relevant(&ev.Order) {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		switch ev.Type {
		case EventOrderInsert:
			if sub.onInsert != nil {
				sub.onInsert(ev)
			}
		case EventOrderUpdate:
			if sub.onUpdate != nil {
				sub.onUpdate(ev)
			}
		}
	}

	h.broadcast(ev.Type, ev.Order, func(scope models.Scope) bool {
		return scope.Relevant(&ev.Order)
	})
}

// BroadcastNotification pushes a persisted notification to its user's
// websocket connections (all admin connections for broadcasts).
func (h *Hub) BroadcastNotification(n models.Notification) {
	h.broadcast(EventNotification, n, func(scope models.Scope) bool {
		if n.UserID == nil {
			return scope.Role == models.RoleAdmin
		}
		return scope.UserID == *n.UserID || scope.Role == models.RoleAdmin
	})
}

func (h *Hub) broadcast(event string, data interface{}, match func(models.Scope) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return
	}

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("feed: marshal %s event: %v", event, err)
		return
	}

	for conn, scope := range h.clients {
		if !match(scope) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("feed: send to %s client: %v", scope.Role, err)
		}
	}
}

// RegisterClient attaches a websocket connection under a scope.
func (h *Hub) RegisterClient(conn *websocket.Conn, scope models.Scope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = scope
}

// UnregisterClient detaches and closes a websocket connection.
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}
