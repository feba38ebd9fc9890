package usecases

import (
	"context"

	"garage/internal/application/catalog/dto"
	"garage/internal/domain/servicecenter"
	"garage/internal/shared/biztime"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

type CreateServiceCenterCommand struct {
	Name      string
	Code      string
	Address   *string
	City      *string
	State     *string
	Phone     *string
	Email     *string
	Latitude  *float64
	Longitude *float64
}

type CreateServiceCenterUseCase struct {
	centers servicecenter.Repository
	logger  logger.Interface
}

func NewCreateServiceCenterUseCase(centers servicecenter.Repository, logger logger.Interface) *CreateServiceCenterUseCase {
	return &CreateServiceCenterUseCase{
		centers: centers,
		logger:  logger,
	}
}

func (uc *CreateServiceCenterUseCase) Execute(ctx context.Context, cmd CreateServiceCenterCommand) (*dto.ServiceCenterDTO, error) {
	uc.logger.Infow("executing create service center use case", "code", cmd.Code)

	sc, err := servicecenter.NewServiceCenter(servicecenter.Params{
		Name:      cmd.Name,
		Code:      cmd.Code,
		Address:   cmd.Address,
		City:      cmd.City,
		State:     cmd.State,
		Phone:     cmd.Phone,
		Email:     cmd.Email,
		Latitude:  cmd.Latitude,
		Longitude: cmd.Longitude,
	}, biztime.NowUTC())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.centers.Create(ctx, sc); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewFieldValidationError("code", "The code has already been taken.")
		}
		uc.logger.Errorw("failed to create service center", "code", cmd.Code, "error", err)
		return nil, err
	}

	uc.logger.Infow("service center created successfully", "service_center_id", sc.ID(), "code", sc.Code())
	result := dto.ToServiceCenterDTO(sc)
	return &result, nil
}

type ListServiceCentersUseCase struct {
	centers servicecenter.Repository
	logger  logger.Interface
}

func NewListServiceCentersUseCase(centers servicecenter.Repository, logger logger.Interface) *ListServiceCentersUseCase {
	return &ListServiceCentersUseCase{
		centers: centers,
		logger:  logger,
	}
}

func (uc *ListServiceCentersUseCase) Execute(ctx context.Context, activeOnly bool) ([]dto.ServiceCenterDTO, error) {
	centers, err := uc.centers.List(ctx, activeOnly)
	if err != nil {
		uc.logger.Errorw("failed to list service centers", "error", err)
		return nil, err
	}
	out := make([]dto.ServiceCenterDTO, 0, len(centers))
	for _, c := range centers {
		out = append(out, dto.ToServiceCenterDTO(c))
	}
	return out, nil
}
