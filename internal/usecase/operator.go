package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
)

type OperatorUseCase struct {
	Repo   entity.OperatorRepository
	Logger *zap.Logger
}

func NewOperatorUseCase(repo entity.OperatorRepository, logger *zap.Logger) *OperatorUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperatorUseCase{Repo: repo, Logger: logger}
}

func (uc *OperatorUseCase) Create(ctx context.Context, in CreateOperatorInput) (*entity.Operator, error) {
	if err := ValidateCreateOperatorInput(in); err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	op, err := entity.NewOperator(in.Name, in.Email, in.Phone, in.Role, entity.OperatorType(in.OperatorType), active)
	if err != nil {
		return nil, validationError(err.Error())
	}

	if _, err := uc.Repo.FindByEmail(ctx, op.Email); err == nil {
		return nil, &DomainError{Code: CodeConflict, Message: "Operator with this email already exists"}
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, translate(err, "lookup operator")
	}

	if err := uc.Repo.Create(ctx, op); err != nil {
		return nil, translate(err, "create operator")
	}
	uc.Logger.Info("operator created", zap.Int64("operator_id", op.ID), zap.String("operator_type", string(op.Type)))
	return op, nil
}

func (uc *OperatorUseCase) Get(ctx context.Context, id int64) (*entity.Operator, error) {
	op, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("operator %d", id))
	}
	return op, nil
}

func (uc *OperatorUseCase) List(ctx context.Context) ([]*entity.Operator, error) {
	ops, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, translate(err, "list operators")
	}
	return ops, nil
}

// Touch records that the operator was active today.
func (uc *OperatorUseCase) Touch(ctx context.Context, id int64) error {
	if err := uc.Repo.TouchLastActive(ctx, id, entity.Today()); err != nil {
		return translate(err, fmt.Sprintf("touch operator %d", id))
	}
	return nil
}
