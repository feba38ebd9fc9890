package usecases

import (
	"context"

	"garage/internal/application/catalog/dto"
	"garage/internal/domain/payment"
	"garage/internal/domain/status"
	"garage/internal/shared/logger"
)

type ListPaymentMethodsUseCase struct {
	payments payment.Repository
	logger   logger.Interface
}

func NewListPaymentMethodsUseCase(payments payment.Repository, logger logger.Interface) *ListPaymentMethodsUseCase {
	return &ListPaymentMethodsUseCase{
		payments: payments,
		logger:   logger,
	}
}

// Execute lists the active payment methods.
func (uc *ListPaymentMethodsUseCase) Execute(ctx context.Context) ([]dto.PaymentMethodDTO, error) {
	methods, err := uc.payments.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list payment methods", "error", err)
		return nil, err
	}
	out := make([]dto.PaymentMethodDTO, 0, len(methods))
	for _, m := range methods {
		out = append(out, dto.ToPaymentMethodDTO(m))
	}
	return out, nil
}

type ListStatusesUseCase struct {
	statuses status.Registry
	logger   logger.Interface
}

func NewListStatusesUseCase(statuses status.Registry, logger logger.Interface) *ListStatusesUseCase {
	return &ListStatusesUseCase{
		statuses: statuses,
		logger:   logger,
	}
}

func (uc *ListStatusesUseCase) Execute(ctx context.Context) ([]dto.StatusDTO, error) {
	all, err := uc.statuses.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list service statuses", "error", err)
		return nil, err
	}
	out := make([]dto.StatusDTO, 0, len(all))
	for _, s := range all {
		out = append(out, dto.ToStatusDTO(s))
	}
	return out, nil
}
