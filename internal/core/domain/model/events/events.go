// Package events holds the domain events raised by the courier and order aggregates.
// Events are collected by the unit of work on commit and stored in the outbox
// for asynchronous publication.
package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Event names used as outbox message types.
const (
	OrdersAssignedName = "orders.assigned"
	OrderEvictedName   = "order.evicted"
	OrderCompletedName = "order.completed"
	RoundSettledName   = "courier.round_settled"
)

// DomainEvent is a fact recorded by an aggregate.
type DomainEvent interface {
	ID() uuid.UUID
	Name() string
	// Key is the partitioning key. All events of one courier share a key.
	Key() string
	OccurredAt() time.Time
}

// Recorder accumulates events for one aggregate instance. The zero value is ready to use.
type Recorder struct {
	events []DomainEvent
}

// Record appends an event.
func (r *Recorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns the recorded events in order.
func (r *Recorder) Events() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Clear drops all recorded events.
func (r *Recorder) Clear() {
	r.events = nil
}

// OrdersAssigned is raised when a courier starts a delivery round.
type OrdersAssigned struct {
	EventID    uuid.UUID `json:"event_id"`
	CourierID  int64     `json:"courier_id"`
	OrderIDs   []int64   `json:"order_ids"`
	AssignTime time.Time `json:"assign_time"`
}

// NewOrdersAssigned creates an OrdersAssigned event.
func NewOrdersAssigned(courierID int64, orderIDs []int64, assignTime time.Time) OrdersAssigned {
	return OrdersAssigned{
		EventID:    uuid.New(),
		CourierID:  courierID,
		OrderIDs:   orderIDs,
		AssignTime: assignTime,
	}
}

func (e OrdersAssigned) ID() uuid.UUID         { return e.EventID }
func (e OrdersAssigned) Name() string          { return OrdersAssignedName }
func (e OrdersAssigned) Key() string           { return courierKey(e.CourierID) }
func (e OrdersAssigned) OccurredAt() time.Time { return e.AssignTime }

// OrderEvicted is raised when an in-process order is returned to the pool.
type OrderEvicted struct {
	EventID   uuid.UUID `json:"event_id"`
	OrderID   int64     `json:"order_id"`
	CourierID int64     `json:"courier_id"`
	Reason    string    `json:"reason"`
	EvictedAt time.Time `json:"evicted_at"`
}

// NewOrderEvicted creates an OrderEvicted event.
func NewOrderEvicted(orderID, courierID int64, reason string, at time.Time) OrderEvicted {
	return OrderEvicted{
		EventID:   uuid.New(),
		OrderID:   orderID,
		CourierID: courierID,
		Reason:    reason,
		EvictedAt: at,
	}
}

func (e OrderEvicted) ID() uuid.UUID         { return e.EventID }
func (e OrderEvicted) Name() string          { return OrderEvictedName }
func (e OrderEvicted) Key() string           { return courierKey(e.CourierID) }
func (e OrderEvicted) OccurredAt() time.Time { return e.EvictedAt }

// OrderCompleted is raised on the first completion of an order.
type OrderCompleted struct {
	EventID      uuid.UUID `json:"event_id"`
	OrderID      int64     `json:"order_id"`
	CourierID    int64     `json:"courier_id"`
	CompleteTime time.Time `json:"complete_time"`
	DeliveryTime int64     `json:"delivery_time"`
}

// NewOrderCompleted creates an OrderCompleted event.
func NewOrderCompleted(orderID, courierID int64, completeTime time.Time, deliverySeconds int64) OrderCompleted {
	return OrderCompleted{
		EventID:      uuid.New(),
		OrderID:      orderID,
		CourierID:    courierID,
		CompleteTime: completeTime,
		DeliveryTime: deliverySeconds,
	}
}

func (e OrderCompleted) ID() uuid.UUID         { return e.EventID }
func (e OrderCompleted) Name() string          { return OrderCompletedName }
func (e OrderCompleted) Key() string           { return courierKey(e.CourierID) }
func (e OrderCompleted) OccurredAt() time.Time { return e.CompleteTime }

// RoundSettled is raised when a courier returns to FREE.
// Counted is false when the round ended without any completed order.
type RoundSettled struct {
	EventID     uuid.UUID `json:"event_id"`
	CourierID   int64     `json:"courier_id"`
	CourierType string    `json:"courier_type,omitempty"`
	Completed   int       `json:"completed"`
	Counted     bool      `json:"counted"`
	SettledAt   time.Time `json:"settled_at"`
}

// NewRoundSettled creates a RoundSettled event.
func NewRoundSettled(courierID int64, courierType string, completed int, at time.Time) RoundSettled {
	return RoundSettled{
		EventID:     uuid.New(),
		CourierID:   courierID,
		CourierType: courierType,
		Completed:   completed,
		Counted:     completed > 0,
		SettledAt:   at,
	}
}

func (e RoundSettled) ID() uuid.UUID         { return e.EventID }
func (e RoundSettled) Name() string          { return RoundSettledName }
func (e RoundSettled) Key() string           { return courierKey(e.CourierID) }
func (e RoundSettled) OccurredAt() time.Time { return e.SettledAt }

func courierKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
