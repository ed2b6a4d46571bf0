package entity

import (
	"errors"
	"strings"
)

// Operator is a staff account that manages buildings and tenants.
type Operator struct {
	ID         int64        `json:"operator_id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone,omitempty"`
	Role       string       `json:"role,omitempty"`
	Type       OperatorType `json:"operator_type"`
	Active     bool         `json:"active"`
	DateJoined Date         `json:"date_joined"`
	LastActive Date         `json:"last_active"`
}

func NewOperator(name, email, phone, role string, opType OperatorType, active bool) (*Operator, error) {
	if opType == "" {
		opType = OperatorTypeLeasingAgent
	}
	today := Today()
	op := &Operator{
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Phone:      phone,
		Role:       role,
		Type:       opType,
		Active:     active,
		DateJoined: today,
		LastActive: today,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return op, nil
}

func (o *Operator) Validate() error {
	if o.Name == "" {
		return errors.New("name is required")
	}
	if o.Email == "" {
		return errors.New("email is required")
	}
	if !o.Type.Valid() {
		return errors.New("operator_type must be one of BUILDING_MANAGER, ADMIN, MAINTENANCE, LEASING_AGENT")
	}
	return nil
}
