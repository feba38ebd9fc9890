package handlers

import (
	"github.com/shopspring/decimal"

	"garage/internal/application/serviceorder/usecases"
)

type ServiceItemRequest struct {
	ProductID *uint            `json:"product_id" binding:"omitempty,min=1"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount"`
	Notes     *string          `json:"notes" binding:"omitempty,max=1000"`
}

type CreateServiceOrderRequest struct {
	ClientID         uint                 `json:"client_id" binding:"required"`
	VehicleID        uint                 `json:"vehicle_id" binding:"required"`
	ServiceCenterID  uint                 `json:"service_center_id"`
	TechnicianID     *uint                `json:"technician_id"`
	AttendantID      *uint                `json:"attendant_id"`
	PaymentMethodID  *uint                `json:"payment_method_id"`
	ScheduledDate    *string              `json:"scheduled_date"`
	Description      string               `json:"description" binding:"required,max=1000"`
	Complaint        *string              `json:"complaint" binding:"omitempty,max=5000"`
	Diagnosis        *string              `json:"diagnosis" binding:"omitempty,max=5000"`
	Solution         *string              `json:"solution" binding:"omitempty,max=5000"`
	Observations     *string              `json:"observations" binding:"omitempty,max=5000"`
	InternalNotes    *string              `json:"internal_notes" binding:"omitempty,max=5000"`
	LaborCost        *decimal.Decimal     `json:"labor_cost"`
	Discount         *decimal.Decimal     `json:"discount"`
	MileageAtService *int                 `json:"mileage_at_service" binding:"omitempty,min=0"`
	FuelLevel        *string              `json:"fuel_level"`
	Priority         string               `json:"priority"`
	WarrantyMonths   int                  `json:"warranty_months" binding:"min=0,max=120"`
	Items            []ServiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateServiceOrderRequest only touches the fields present in the body.
type UpdateServiceOrderRequest struct {
	ClientID         *uint            `json:"client_id" binding:"omitempty,min=1"`
	VehicleID        *uint            `json:"vehicle_id" binding:"omitempty,min=1"`
	ServiceCenterID  *uint            `json:"service_center_id" binding:"omitempty,min=1"`
	TechnicianID     *uint            `json:"technician_id"`
	AttendantID      *uint            `json:"attendant_id"`
	PaymentMethodID  *uint            `json:"payment_method_id"`
	ScheduledDate    *string          `json:"scheduled_date"`
	Description      *string          `json:"description" binding:"omitempty,max=1000"`
	Complaint        *string          `json:"complaint" binding:"omitempty,max=5000"`
	Diagnosis        *string          `json:"diagnosis" binding:"omitempty,max=5000"`
	Solution         *string          `json:"solution" binding:"omitempty,max=5000"`
	Observations     *string          `json:"observations" binding:"omitempty,max=5000"`
	InternalNotes    *string          `json:"internal_notes" binding:"omitempty,max=5000"`
	LaborCost        *decimal.Decimal `json:"labor_cost"`
	Discount         *decimal.Decimal `json:"discount"`
	MileageAtService *int             `json:"mileage_at_service" binding:"omitempty,min=0"`
	FuelLevel        *string          `json:"fuel_level"`
	Priority         *string          `json:"priority"`
	WarrantyMonths   *int             `json:"warranty_months" binding:"omitempty,min=0,max=120"`
}

type StartServiceOrderRequest struct {
	TechnicianID *uint `json:"technician_id" binding:"omitempty,min=1"`
}

type CompleteServiceOrderRequest struct {
	PaymentMethodID *uint `json:"payment_method_id" binding:"omitempty,min=1"`
}

type CancelServiceOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toItemInputs(items []ServiceItemRequest) []usecases.CreateItemInput {
	if len(items) == 0 {
		return nil
	}
	out := make([]usecases.CreateItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecases.CreateItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  decimalOrZero(it.Discount),
			Notes:     it.Notes,
		})
	}
	return out
}
