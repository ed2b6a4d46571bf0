package entity

import "fmt"

type OperatorType string

const (
	OperatorTypeBuildingManager OperatorType = "BUILDING_MANAGER"
	OperatorTypeAdmin           OperatorType = "ADMIN"
	OperatorTypeMaintenance     OperatorType = "MAINTENANCE"
	OperatorTypeLeasingAgent    OperatorType = "LEASING_AGENT"
)

func (t OperatorType) Valid() bool {
	switch t {
	case OperatorTypeBuildingManager, OperatorTypeAdmin, OperatorTypeMaintenance, OperatorTypeLeasingAgent:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "AVAILABLE"
	RoomStatusOccupied  RoomStatus = "OCCUPIED"
)

type LeadStatus string

const (
	LeadStatusExploring        LeadStatus = "EXPLORING"
	LeadStatusShowingScheduled LeadStatus = "SHOWING_SCHEDULED"
	LeadStatusConverted        LeadStatus = "CONVERTED"
	LeadStatusLost             LeadStatus = "LOST"
)

type TenantStatus string

const (
	TenantStatusActive TenantStatus = "ACTIVE"
	TenantStatusEnded  TenantStatus = "ENDED"
)

type PaymentStatus string

const (
	PaymentStatusCurrent PaymentStatus = "CURRENT"
	PaymentStatusLate    PaymentStatus = "LATE"
)

// Transition tables. A status missing from a table is terminal.
var (
	roomTransitions = map[RoomStatus][]RoomStatus{
		RoomStatusAvailable: {RoomStatusOccupied},
		RoomStatusOccupied:  {RoomStatusAvailable},
	}

	leadTransitions = map[LeadStatus][]LeadStatus{
		LeadStatusExploring:        {LeadStatusShowingScheduled, LeadStatusConverted, LeadStatusLost},
		LeadStatusShowingScheduled: {LeadStatusExploring, LeadStatusConverted, LeadStatusLost},
	}

	tenantTransitions = map[TenantStatus][]TenantStatus{
		TenantStatusActive: {TenantStatusEnded},
	}

	paymentTransitions = map[PaymentStatus][]PaymentStatus{
		PaymentStatusCurrent: {PaymentStatusLate},
		PaymentStatusLate:    {PaymentStatusCurrent},
	}
)

func (s RoomStatus) Valid() bool {
	_, ok := roomTransitions[s]
	return ok
}

func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	return contains(roomTransitions[s], next)
}

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusExploring, LeadStatusShowingScheduled, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

func (s LeadStatus) Terminal() bool {
	return s.Valid() && len(leadTransitions[s]) == 0
}

func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	return contains(leadTransitions[s], next)
}

func (s TenantStatus) Valid() bool {
	return s == TenantStatusActive || s == TenantStatusEnded
}

func (s TenantStatus) CanTransitionTo(next TenantStatus) bool {
	return contains(tenantTransitions[s], next)
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return contains(paymentTransitions[s], next)
}

// TransitionError reports a rejected status change. It matches ErrInvalidTransition.
type TransitionError struct {
	Entity string
	Key    string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s cannot move from %s to %s", e.Entity, e.Key, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
