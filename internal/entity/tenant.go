package entity

import (
	"errors"
	"strings"
)

// Tenant is a signed lease binding a person to a room for a date range.
type Tenant struct {
	ID            int64         `json:"id"`
	TenantID      string        `json:"tenant_id"`
	Name          string        `json:"tenant_name"`
	RoomID        string        `json:"room_id"`
	RoomNumber    string        `json:"room_number"`
	LeaseStart    Date          `json:"lease_start_date"`
	LeaseEnd      Date          `json:"lease_end_date"`
	OperatorID    int64         `json:"operator_id"`
	BookingType   string        `json:"booking_type"`
	Nationality   string        `json:"tenant_nationality"`
	Email         string        `json:"tenant_email"`
	Phone         string        `json:"phone,omitempty"`
	BuildingID    string        `json:"building_id"`
	Status        TenantStatus  `json:"status"`
	DepositAmount float64       `json:"deposit_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("tenant_name is required")
	}
	if strings.TrimSpace(t.RoomID) == "" {
		return errors.New("room_id is required")
	}
	if t.DepositAmount < 0 {
		return errors.New("deposit_amount must not be negative")
	}
	return nil
}

// ValidateLease checks the lease period. Plain tenant creation does not call it.
func (t *Tenant) ValidateLease() error {
	if t.LeaseStart.IsZero() || t.LeaseEnd.IsZero() {
		return errors.New("lease_start_date and lease_end_date are required")
	}
	if !t.LeaseStart.Before(t.LeaseEnd) {
		return errors.New("lease_start_date must be before lease_end_date")
	}
	return nil
}

func (t *Tenant) Transition(next TenantStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "tenant", Key: t.TenantID, From: string(t.Status), To: string(next)}
	}
	t.Status = next
	return nil
}

func (t *Tenant) TransitionPayment(next PaymentStatus) error {
	if !t.PaymentStatus.CanTransitionTo(next) {
		return &TransitionError{Entity: "tenant payment", Key: t.TenantID, From: string(t.PaymentStatus), To: string(next)}
	}
	t.PaymentStatus = next
	return nil
}
