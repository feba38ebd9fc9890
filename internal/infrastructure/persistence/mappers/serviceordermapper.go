package mappers

import (
	"fmt"
	"time"

	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/infrastructure/persistence/models"
)

// ServiceOrderMapper converts between the service order aggregate and its
// persistence models. Status names and ids are resolved by the caller.
type ServiceOrderMapper interface {
	ToModel(o *serviceorder.ServiceOrder, statusID uint) *models.ServiceModel
	ItemToModel(it *serviceorder.Item) *models.ServiceItemModel
	ToDomain(m *models.ServiceModel, statusName status.Name, items []*models.ServiceItemModel) (*serviceorder.ServiceOrder, error)
	ItemToDomain(m *models.ServiceItemModel) *serviceorder.Item
}

type ServiceOrderMapperImpl struct{}

func NewServiceOrderMapper() ServiceOrderMapper {
	return &ServiceOrderMapperImpl{}
}

func (m *ServiceOrderMapperImpl) ToModel(o *serviceorder.ServiceOrder, statusID uint) *models.ServiceModel {
	model := &models.ServiceModel{
		ID:               o.ID(),
		ServiceNumber:    o.ServiceNumber(),
		ClientID:         o.ClientID(),
		VehicleID:        o.VehicleID(),
		ServiceCenterID:  o.ServiceCenterID(),
		TechnicianID:     o.TechnicianID(),
		AttendantID:      o.AttendantID(),
		PaymentMethodID:  o.PaymentMethodID(),
		StatusID:         statusID,
		ScheduledDate:    utcPtr(o.ScheduledDate()),
		StartedAt:        utcPtr(o.StartedAt()),
		FinishedAt:       utcPtr(o.FinishedAt()),
		Description:      o.Description(),
		Complaint:        o.Complaint(),
		Diagnosis:        o.Diagnosis(),
		Solution:         o.Solution(),
		Observations:     o.Observations(),
		InternalNotes:    o.InternalNotes(),
		LaborCost:        o.LaborCost(),
		Discount:         o.Discount(),
		TotalAmount:      o.TotalAmount(),
		MileageAtService: o.MileageAtService(),
		Priority:         o.Priority().String(),
		WarrantyMonths:   o.WarrantyMonths(),
		CreatedAt:        o.CreatedAt().UTC(),
		UpdatedAt:        o.UpdatedAt().UTC(),
	}
	if fl := o.FuelLevel(); fl != nil {
		s := fl.String()
		model.FuelLevel = &s
	}
	return model
}

func (m *ServiceOrderMapperImpl) ItemToModel(it *serviceorder.Item) *models.ServiceItemModel {
	return &models.ServiceItemModel{
		ID:        it.ID(),
		ServiceID: it.ServiceID(),
		ProductID: it.ProductID(),
		Quantity:  it.Quantity(),
		UnitPrice: it.UnitPrice(),
		Discount:  it.Discount(),
		Notes:     it.Notes(),
		CreatedAt: it.CreatedAt().UTC(),
		UpdatedAt: it.UpdatedAt().UTC(),
	}
}

func (m *ServiceOrderMapperImpl) ToDomain(model *models.ServiceModel, statusName status.Name, items []*models.ServiceItemModel) (*serviceorder.ServiceOrder, error) {
	if model == nil {
		return nil, fmt.Errorf("service model is nil")
	}

	domainItems := make([]*serviceorder.Item, 0, len(items))
	for _, it := range items {
		domainItems = append(domainItems, m.ItemToDomain(it))
	}

	var fuel *serviceorder.FuelLevel
	if model.FuelLevel != nil {
		fl := serviceorder.FuelLevel(*model.FuelLevel)
		fuel = &fl
	}

	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deletedAt = &t
	}

	o, err := serviceorder.ReconstructServiceOrder(serviceorder.ReconstructParams{
		ID:               model.ID,
		ServiceNumber:    model.ServiceNumber,
		ClientID:         model.ClientID,
		VehicleID:        model.VehicleID,
		ServiceCenterID:  model.ServiceCenterID,
		TechnicianID:     model.TechnicianID,
		AttendantID:      model.AttendantID,
		PaymentMethodID:  model.PaymentMethodID,
		Status:           statusName,
		ScheduledDate:    model.ScheduledDate,
		StartedAt:        model.StartedAt,
		FinishedAt:       model.FinishedAt,
		Description:      model.Description,
		Complaint:        model.Complaint,
		Diagnosis:        model.Diagnosis,
		Solution:         model.Solution,
		Observations:     model.Observations,
		InternalNotes:    model.InternalNotes,
		LaborCost:        model.LaborCost,
		Discount:         model.Discount,
		TotalAmount:      model.TotalAmount,
		MileageAtService: model.MileageAtService,
		FuelLevel:        fuel,
		Priority:         serviceorder.Priority(model.Priority),
		WarrantyMonths:   model.WarrantyMonths,
		Items:            domainItems,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		DeletedAt:        deletedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct service order %d: %w", model.ID, err)
	}
	return o, nil
}

func (m *ServiceOrderMapperImpl) ItemToDomain(model *models.ServiceItemModel) *serviceorder.Item {
	return serviceorder.ReconstructItem(
		model.ID,
		model.ServiceID,
		model.ProductID,
		model.Quantity,
		model.UnitPrice,
		model.Discount,
		model.Notes,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
