package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending       OrderStatus = "PENDING"
	OrderInPreparation OrderStatus = "IN_PREPARATION"
	OrderReady         OrderStatus = "READY"
	OrderDelivered     OrderStatus = "DELIVERED"
	OrderCancelled     OrderStatus = "CANCELLED"
)

// orderStatusLabels keeps display text out of the entity itself.
var orderStatusLabels = map[OrderStatus]string{
	OrderPending:       "Pendiente",
	OrderInPreparation: "En Preparación",
	OrderReady:         "Listo",
	OrderDelivered:     "Entregado",
	OrderCancelled:     "Cancelado",
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the customer-facing description for the status.
func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// ReservationStatus is the lifecycle state of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationOccupied  ReservationStatus = "OCCUPIED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

var reservationStatusLabels = map[ReservationStatus]string{
	ReservationPending:   "Pendiente",
	ReservationConfirmed: "Confirmada",
	ReservationOccupied:  "Ocupada",
	ReservationCompleted: "Completada",
	ReservationCancelled: "Cancelada",
	ReservationNoShow:    "No Show",
}

func (s ReservationStatus) Valid() bool {
	_, ok := reservationStatusLabels[s]
	return ok
}

func (s ReservationStatus) Label() string {
	return reservationStatusLabels[s]
}

// IsTerminal reports whether the reservation can no longer change state.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}
