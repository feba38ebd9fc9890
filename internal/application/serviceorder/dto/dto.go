package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
)

type StatusDTO struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type ClientSummaryDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Document string  `json:"document"`
	Email    *string `json:"email,omitempty"`
}

type VehicleSummaryDTO struct {
	ID      uint   `json:"id"`
	Plate   string `json:"plate"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    *int   `json:"year,omitempty"`
	Mileage int    `json:"mileage"`
}

type ServiceCenterSummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type UserSummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type PaymentMethodSummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ServiceItemDTO struct {
	ID          uint    `json:"id"`
	ProductID   *uint   `json:"product_id"`
	ProductName *string `json:"product_name,omitempty"`
	ProductSKU  *string `json:"product_sku,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   string  `json:"unit_price"`
	Discount    string  `json:"discount"`
	TotalPrice  string  `json:"total_price"`
	Notes       *string `json:"notes,omitempty"`
}

type StatusHistoryDTO struct {
	From      *string        `json:"from_status"`
	To        string         `json:"to_status"`
	ChangedBy *uint          `json:"changed_by"`
	Reason    *string        `json:"reason,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ServiceOrderDTO is the API view of an order. Money fields are strings with
// two decimals.
type ServiceOrderDTO struct {
	ID               uint                     `json:"id"`
	ServiceNumber    string                   `json:"service_number"`
	ClientID         uint                     `json:"client_id"`
	VehicleID        uint                     `json:"vehicle_id"`
	ServiceCenterID  uint                     `json:"service_center_id"`
	TechnicianID     *uint                    `json:"technician_id"`
	AttendantID      *uint                    `json:"attendant_id"`
	PaymentMethodID  *uint                    `json:"payment_method_id"`
	Status           StatusDTO                `json:"status"`
	ScheduledDate    *time.Time               `json:"scheduled_date"`
	StartedAt        *time.Time               `json:"started_at"`
	FinishedAt       *time.Time               `json:"finished_at"`
	Description      string                   `json:"description"`
	Complaint        *string                  `json:"complaint"`
	Diagnosis        *string                  `json:"diagnosis"`
	Solution         *string                  `json:"solution"`
	Observations     *string                  `json:"observations"`
	InternalNotes    *string                  `json:"internal_notes"`
	LaborCost        string                   `json:"labor_cost"`
	Discount         string                   `json:"discount"`
	TotalAmount      string                   `json:"total_amount"`
	MileageAtService *int                     `json:"mileage_at_service"`
	FuelLevel        *string                  `json:"fuel_level"`
	Priority         string                   `json:"priority"`
	WarrantyMonths   int                      `json:"warranty_months"`
	Items            []ServiceItemDTO         `json:"items"`
	Client           *ClientSummaryDTO        `json:"client,omitempty"`
	Vehicle          *VehicleSummaryDTO       `json:"vehicle,omitempty"`
	ServiceCenter    *ServiceCenterSummaryDTO `json:"service_center,omitempty"`
	Technician       *UserSummaryDTO          `json:"technician,omitempty"`
	Attendant        *UserSummaryDTO          `json:"attendant,omitempty"`
	PaymentMethod    *PaymentMethodSummaryDTO `json:"payment_method,omitempty"`
	History          []StatusHistoryDTO       `json:"history,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	DeletedAt        *time.Time               `json:"deleted_at,omitempty"`
}

type StatisticsDTO struct {
	Total            int64            `json:"total"`
	Pending          int64            `json:"pending"`
	Scheduled        int64            `json:"scheduled"`
	InProgress       int64            `json:"in_progress"`
	Completed        int64            `json:"completed"`
	Cancelled        int64            `json:"cancelled"`
	Revenue          string           `json:"revenue"`
	RevenueThisMonth string           `json:"revenue_this_month"`
	ByStatus         map[string]int64 `json:"by_status"`
}

// Money renders an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Related holds the records referenced by a page of orders, loaded in bulk.
type Related struct {
	Statuses       map[status.Name]*status.Status
	Clients        map[uint]*client.Client
	Vehicles       map[uint]*vehicle.Vehicle
	Centers        map[uint]*servicecenter.ServiceCenter
	Users          map[uint]*user.User
	PaymentMethods map[uint]*payment.PaymentMethod
	Products       map[uint]*product.Product
}

func ToServiceOrderDTO(o *serviceorder.ServiceOrder, rel *Related) *ServiceOrderDTO {
	if o == nil {
		return nil
	}
	if rel == nil {
		rel = &Related{}
	}

	d := &ServiceOrderDTO{
		ID:               o.ID(),
		ServiceNumber:    o.ServiceNumber(),
		ClientID:         o.ClientID(),
		VehicleID:        o.VehicleID(),
		ServiceCenterID:  o.ServiceCenterID(),
		TechnicianID:     o.TechnicianID(),
		AttendantID:      o.AttendantID(),
		PaymentMethodID:  o.PaymentMethodID(),
		Status:           ToStatusDTO(o.Status(), rel.Statuses[o.Status()]),
		ScheduledDate:    o.ScheduledDate(),
		StartedAt:        o.StartedAt(),
		FinishedAt:       o.FinishedAt(),
		Description:      o.Description(),
		Complaint:        o.Complaint(),
		Diagnosis:        o.Diagnosis(),
		Solution:         o.Solution(),
		Observations:     o.Observations(),
		InternalNotes:    o.InternalNotes(),
		LaborCost:        Money(o.LaborCost()),
		Discount:         Money(o.Discount()),
		TotalAmount:      Money(o.TotalAmount()),
		MileageAtService: o.MileageAtService(),
		Priority:         o.Priority().String(),
		WarrantyMonths:   o.WarrantyMonths(),
		Items:            make([]ServiceItemDTO, 0, len(o.Items())),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		DeletedAt:        o.DeletedAt(),
	}
	if fl := o.FuelLevel(); fl != nil {
		s := fl.String()
		d.FuelLevel = &s
	}

	for _, it := range o.Items() {
		d.Items = append(d.Items, toItemDTO(it, rel.Products))
	}

	if c, ok := rel.Clients[o.ClientID()]; ok {
		d.Client = &ClientSummaryDTO{ID: c.ID(), Name: c.Name(), Phone: c.Phone(), Document: c.Document(), Email: c.Email()}
	}
	if v, ok := rel.Vehicles[o.VehicleID()]; ok {
		d.Vehicle = &VehicleSummaryDTO{ID: v.ID(), Plate: v.Plate(), Brand: v.Brand(), Model: v.Model(), Year: v.Year(), Mileage: v.Mileage()}
	}
	if sc, ok := rel.Centers[o.ServiceCenterID()]; ok {
		d.ServiceCenter = &ServiceCenterSummaryDTO{ID: sc.ID(), Name: sc.Name(), Code: sc.Code()}
	}
	d.Technician = userSummary(rel.Users, o.TechnicianID())
	d.Attendant = userSummary(rel.Users, o.AttendantID())
	if id := o.PaymentMethodID(); id != nil {
		if pm, ok := rel.PaymentMethods[*id]; ok {
			d.PaymentMethod = &PaymentMethodSummaryDTO{ID: pm.ID(), Name: pm.Name(), Slug: pm.Slug()}
		}
	}
	return d
}

func ToStatusDTO(name status.Name, s *status.Status) StatusDTO {
	if s == nil {
		return StatusDTO{Name: name.String(), Label: name.String()}
	}
	return StatusDTO{Name: s.Name().String(), Label: s.Label(), Color: s.Color()}
}

func ToHistoryDTOs(changes []*serviceorder.StatusChange) []StatusHistoryDTO {
	out := make([]StatusHistoryDTO, 0, len(changes))
	for _, c := range changes {
		h := StatusHistoryDTO{
			To:        c.To.String(),
			ChangedBy: c.ChangedBy,
			Reason:    c.Reason,
			Metadata:  c.Metadata,
			CreatedAt: c.CreatedAt,
		}
		if c.From != nil {
			from := c.From.String()
			h.From = &from
		}
		out = append(out, h)
	}
	return out
}

func ToStatisticsDTO(s *serviceorder.Statistics) *StatisticsDTO {
	byStatus := make(map[string]int64, len(s.ByStatus))
	for name, n := range s.ByStatus {
		byStatus[name.String()] = n
	}
	return &StatisticsDTO{
		Total:            s.Total,
		Pending:          s.Pending,
		Scheduled:        s.Scheduled,
		InProgress:       s.InProgress,
		Completed:        s.Completed,
		Cancelled:        s.Cancelled,
		Revenue:          Money(s.Revenue),
		RevenueThisMonth: Money(s.RevenueThisMonth),
		ByStatus:         byStatus,
	}
}

func toItemDTO(it *serviceorder.Item, products map[uint]*product.Product) ServiceItemDTO {
	d := ServiceItemDTO{
		ID:         it.ID(),
		ProductID:  it.ProductID(),
		Quantity:   it.Quantity(),
		UnitPrice:  Money(it.UnitPrice()),
		Discount:   Money(it.Discount()),
		TotalPrice: Money(it.TotalPrice()),
		Notes:      it.Notes(),
	}
	if pid := it.ProductID(); pid != nil {
		if p, ok := products[*pid]; ok {
			name, sku := p.Name(), p.SKU()
			d.ProductName = &name
			d.ProductSKU = &sku
		}
	}
	return d
}

func userSummary(users map[uint]*user.User, id *uint) *UserSummaryDTO {
	if id == nil {
		return nil
	}
	u, ok := users[*id]
	if !ok {
		return nil
	}
	return &UserSummaryDTO{ID: u.ID(), Name: u.Name(), Role: u.Role().String()}
}
