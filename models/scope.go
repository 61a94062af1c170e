package models

import "fmt"

// Scope is a (role, user) pair that determines which orders a subscriber or
// controller may see. Admin scope ignores UserID.
type Scope struct {
	Role   string
	UserID uint
}

// Key is the identity of the scope's logical feed channel.
func (s Scope) Key() string {
	if s.Role == RoleAdmin {
		return "orders_admin"
	}
	return fmt.Sprintf("orders_%s_%d", s.Role, s.UserID)
}

// Relevant reports whether an order belongs to this scope.
func (s Scope) Relevant(o *Order) bool {
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return o.UserID == s.UserID
	case RoleWorker:
		return o.WorkerID != nil && *o.WorkerID == s.UserID
	}
	return false
}
