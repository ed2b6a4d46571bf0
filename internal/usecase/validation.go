package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// joinValidation folds a list of field errors into one VALIDATION_ERROR.
func joinValidation(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return validationError("validation failed: " + strings.Join(parts, ", "))
}

func validateEmail(field, email string) []ValidationError {
	if strings.TrimSpace(email) == "" {
		return []ValidationError{{field, "is required"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []ValidationError{{field, "is invalid"}}
	}
	return nil
}

func ValidateCreateOperatorInput(in CreateOperatorInput) error {
	var errs []ValidationError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	errs = append(errs, validateEmail("email", in.Email)...)
	if in.OperatorType != "" && !entity.OperatorType(in.OperatorType).Valid() {
		errs = append(errs, ValidationError{"operator_type", "must be BUILDING_MANAGER, ADMIN, MAINTENANCE or LEASING_AGENT"})
	}
	return joinValidation(errs)
}

func ValidateCreateBuildingInput(in CreateBuildingInput) error {
	var errs []ValidationError
	if strings.TrimSpace(in.BuildingID) == "" {
		errs = append(errs, ValidationError{"building_id", "is required"})
	}
	if strings.TrimSpace(in.BuildingName) == "" {
		errs = append(errs, ValidationError{"building_name", "is required"})
	}
	counts := []struct {
		field string
		value *int
	}{{"floors", in.Floors}, {"total_rooms", in.TotalRooms}, {"total_bathrooms", in.TotalBathrooms}}
	for _, c := range counts {
		if c.value != nil && *c.value < 0 {
			errs = append(errs, ValidationError{c.field, "must not be negative"})
		}
	}
	return joinValidation(errs)
}

func ValidateCreateLeadInput(in CreateLeadInput) error {
	errs := validateEmail("email", in.Email)
	if in.Status != "" && !entity.LeadStatus(in.Status).Valid() {
		errs = append(errs, ValidationError{"status", "must be EXPLORING, SHOWING_SCHEDULED, CONVERTED or LOST"})
	}
	return joinValidation(errs)
}

func ValidateCreateTenantInput(in CreateTenantInput) error {
	var errs []ValidationError
	if strings.TrimSpace(in.TenantName) == "" {
		errs = append(errs, ValidationError{"tenant_name", "is required"})
	}
	if strings.TrimSpace(in.RoomID) == "" {
		errs = append(errs, ValidationError{"room_id", "is required"})
	}
	if in.DepositAmount < 0 {
		errs = append(errs, ValidationError{"deposit_amount", "must not be negative"})
	}
	return joinValidation(errs)
}

func ValidateConvertLeadInput(in ConvertLeadInput) error {
	var errs []ValidationError
	if strings.TrimSpace(in.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}
	if strings.TrimSpace(in.TenantName) == "" {
		errs = append(errs, ValidationError{"tenant_name", "is required"})
	}
	if in.OperatorID <= 0 {
		errs = append(errs, ValidationError{"operator_id", "is required"})
	}
	if in.LeaseStartDate.IsZero() || in.LeaseEndDate.IsZero() {
		errs = append(errs, ValidationError{"lease_dates", "lease_start_date and lease_end_date are required"})
	} else if !in.LeaseStartDate.Before(in.LeaseEndDate) {
		errs = append(errs, ValidationError{"lease_dates", "lease_start_date must be before lease_end_date"})
	}
	if in.DepositAmount < 0 {
		errs = append(errs, ValidationError{"deposit_amount", "must not be negative"})
	}
	return joinValidation(errs)
}
