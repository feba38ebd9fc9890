package usecases

import (
	"context"

	"garage/internal/application/catalog/dto"
	"garage/internal/domain/servicecenter"
	"garage/internal/shared/errors"
	"garage/internal/shared/logger"
)

const (
	DefaultNearbyRadiusKm = 10.0
	MaxNearbyRadiusKm     = 500.0
	DefaultNearbyLimit    = 10
	MaxNearbyLimit        = 50
)

type FindNearbyQuery struct {
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
	Limit     int
}

// FindNearbyServiceCentersUseCase lists active centers around a point,
// closest first.
type FindNearbyServiceCentersUseCase struct {
	centers servicecenter.Repository
	logger  logger.Interface
}

func NewFindNearbyServiceCentersUseCase(centers servicecenter.Repository, logger logger.Interface) *FindNearbyServiceCentersUseCase {
	return &FindNearbyServiceCentersUseCase{
		centers: centers,
		logger:  logger,
	}
}

func (uc *FindNearbyServiceCentersUseCase) Execute(ctx context.Context, query FindNearbyQuery) ([]dto.ServiceCenterDTO, error) {
	fields := map[string][]string{}
	if query.Latitude == nil {
		fields["lat"] = append(fields["lat"], "The lat field is required.")
	} else if *query.Latitude < -90 || *query.Latitude > 90 {
		fields["lat"] = append(fields["lat"], "The lat must be between -90 and 90.")
	}
	if query.Longitude == nil {
		fields["lng"] = append(fields["lng"], "The lng field is required.")
	} else if *query.Longitude < -180 || *query.Longitude > 180 {
		fields["lng"] = append(fields["lng"], "The lng must be between -180 and 180.")
	}
	if query.RadiusKm < 0 || query.RadiusKm > MaxNearbyRadiusKm {
		fields["radius_km"] = append(fields["radius_km"], "The radius km must be between 0 and 500.")
	}
	if err := errors.NewFieldsValidationError(fields); err != nil {
		return nil, err
	}

	radius := query.RadiusKm
	if radius == 0 {
		radius = DefaultNearbyRadiusKm
	}
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}
	if limit > MaxNearbyLimit {
		limit = MaxNearbyLimit
	}

	lat, lng := *query.Latitude, *query.Longitude
	candidates, err := uc.centers.ListWithinBounds(ctx, servicecenter.SearchBounds(lat, lng, radius))
	if err != nil {
		uc.logger.Errorw("failed to list service centers within bounds", "lat", lat, "lng", lng, "error", err)
		return nil, err
	}

	nearby := servicecenter.FilterNearby(candidates, lat, lng, radius, limit)
	out := make([]dto.ServiceCenterDTO, 0, len(nearby))
	for _, n := range nearby {
		out = append(out, dto.ToNearbyDTO(n))
	}
	return out, nil
}
