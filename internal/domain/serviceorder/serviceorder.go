// Package serviceorder holds the service order aggregate: one work ticket for
// one vehicle visit, its billable lines and its lifecycle.
package serviceorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"garage/internal/domain/status"
	"garage/internal/shared/biztime"
)

const maxDescriptionLength = 255

var transitions = map[status.Name][]status.Name{
	status.Scheduled:  {status.InProgress, status.Cancelled},
	status.InProgress: {status.Completed, status.Cancelled},
}

// CanTransition reports whether the lifecycle allows moving from one status to another.
func CanTransition(from, to status.Name) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type ServiceOrder struct {
	id               uint
	serviceNumber    string
	clientID         uint
	vehicleID        uint
	serviceCenterID  uint
	technicianID     *uint
	attendantID      *uint
	paymentMethodID  *uint
	status           status.Name
	scheduledDate    *time.Time
	startedAt        *time.Time
	finishedAt       *time.Time
	description      string
	complaint        *string
	diagnosis        *string
	solution         *string
	observations     *string
	internalNotes    *string
	laborCost        decimal.Decimal
	discount         decimal.Decimal
	totalAmount      decimal.Decimal
	mileageAtService *int
	fuelLevel        *FuelLevel
	priority         Priority
	warrantyMonths   int
	items            []*Item
	createdAt        time.Time
	updatedAt        time.Time
	deletedAt        *time.Time
}

// NewParams carries the input of a new service order. Items are added
// afterwards with AddItem.
type NewParams struct {
	ClientID         uint
	VehicleID        uint
	ServiceCenterID  uint
	TechnicianID     *uint
	AttendantID      *uint
	PaymentMethodID  *uint
	ScheduledDate    *time.Time
	Description      string
	Complaint        *string
	Diagnosis        *string
	Solution         *string
	Observations     *string
	InternalNotes    *string
	LaborCost        decimal.Decimal
	Discount         decimal.Decimal
	MileageAtService *int
	FuelLevel        *FuelLevel
	Priority         Priority
	WarrantyMonths   int
}

// NewServiceOrder builds an order in the scheduled state. The service number
// is assigned later by the caller.
func NewServiceOrder(p NewParams, now time.Time) (*ServiceOrder, error) {
	var errs ValidationErrors
	if p.ClientID == 0 {
		errs.add("client_id", "client_id is required", nil)
	}
	if p.VehicleID == 0 {
		errs.add("vehicle_id", "vehicle_id is required", nil)
	}
	if p.ServiceCenterID == 0 {
		errs.add("service_center_id", "service_center_id is required", nil)
	}
	validateDescription(&errs, p.Description)
	validateScheduledDate(&errs, p.ScheduledDate, now)
	validateMoney(&errs, "labor_cost", p.LaborCost)
	validateMoney(&errs, "discount", p.Discount)
	validateMileage(&errs, p.MileageAtService)
	if p.FuelLevel != nil && !p.FuelLevel.IsValid() {
		errs.add("fuel_level", "fuel_level is invalid", nil)
	}
	if p.Priority == "" {
		p.Priority = PriorityNormal
	}
	if !p.Priority.IsValid() {
		errs.add("priority", "priority is invalid", nil)
	}
	if p.WarrantyMonths < 0 {
		errs.add("warranty_months", "warranty_months must be greater than or equal to 0", nil)
	}
	if err := errs.orNil(); err != nil {
		return nil, err
	}

	o := &ServiceOrder{
		clientID:         p.ClientID,
		vehicleID:        p.VehicleID,
		serviceCenterID:  p.ServiceCenterID,
		technicianID:     p.TechnicianID,
		attendantID:      p.AttendantID,
		paymentMethodID:  p.PaymentMethodID,
		status:           status.Scheduled,
		scheduledDate:    p.ScheduledDate,
		description:      strings.TrimSpace(p.Description),
		complaint:        p.Complaint,
		diagnosis:        p.Diagnosis,
		solution:         p.Solution,
		observations:     p.Observations,
		internalNotes:    p.InternalNotes,
		laborCost:        p.LaborCost,
		discount:         p.Discount,
		mileageAtService: p.MileageAtService,
		fuelLevel:        p.FuelLevel,
		priority:         p.Priority,
		warrantyMonths:   p.WarrantyMonths,
		items:            []*Item{},
		createdAt:        now,
		updatedAt:        now,
	}
	o.RecalculateTotal()
	return o, nil
}

// ReconstructParams mirrors every persisted column.
type ReconstructParams struct {
	ID               uint
	ServiceNumber    string
	ClientID         uint
	VehicleID        uint
	ServiceCenterID  uint
	TechnicianID     *uint
	AttendantID      *uint
	PaymentMethodID  *uint
	Status           status.Name
	ScheduledDate    *time.Time
	StartedAt        *time.Time
	FinishedAt       *time.Time
	Description      string
	Complaint        *string
	Diagnosis        *string
	Solution         *string
	Observations     *string
	InternalNotes    *string
	LaborCost        decimal.Decimal
	Discount         decimal.Decimal
	TotalAmount      decimal.Decimal
	MileageAtService *int
	FuelLevel        *FuelLevel
	Priority         Priority
	WarrantyMonths   int
	Items            []*Item
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

func ReconstructServiceOrder(p ReconstructParams) (*ServiceOrder, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("service order ID cannot be zero")
	}
	if p.ServiceNumber == "" {
		return nil, fmt.Errorf("service number is required")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.Priority == "" {
		p.Priority = PriorityNormal
	}
	items := p.Items
	if items == nil {
		items = []*Item{}
	}

	return &ServiceOrder{
		id:               p.ID,
		serviceNumber:    p.ServiceNumber,
		clientID:         p.ClientID,
		vehicleID:        p.VehicleID,
		serviceCenterID:  p.ServiceCenterID,
		technicianID:     p.TechnicianID,
		attendantID:      p.AttendantID,
		paymentMethodID:  p.PaymentMethodID,
		status:           p.Status,
		scheduledDate:    p.ScheduledDate,
		startedAt:        p.StartedAt,
		finishedAt:       p.FinishedAt,
		description:      p.Description,
		complaint:        p.Complaint,
		diagnosis:        p.Diagnosis,
		solution:         p.Solution,
		observations:     p.Observations,
		internalNotes:    p.InternalNotes,
		laborCost:        p.LaborCost,
		discount:         p.Discount,
		totalAmount:      p.TotalAmount,
		mileageAtService: p.MileageAtService,
		fuelLevel:        p.FuelLevel,
		priority:         p.Priority,
		warrantyMonths:   p.WarrantyMonths,
		items:            items,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
		deletedAt:        p.DeletedAt,
	}, nil
}

func (o *ServiceOrder) ID() uint                     { return o.id }
func (o *ServiceOrder) ServiceNumber() string        { return o.serviceNumber }
func (o *ServiceOrder) ClientID() uint               { return o.clientID }
func (o *ServiceOrder) VehicleID() uint              { return o.vehicleID }
func (o *ServiceOrder) ServiceCenterID() uint        { return o.serviceCenterID }
func (o *ServiceOrder) TechnicianID() *uint          { return o.technicianID }
func (o *ServiceOrder) AttendantID() *uint           { return o.attendantID }
func (o *ServiceOrder) PaymentMethodID() *uint       { return o.paymentMethodID }
func (o *ServiceOrder) Status() status.Name          { return o.status }
func (o *ServiceOrder) ScheduledDate() *time.Time    { return o.scheduledDate }
func (o *ServiceOrder) StartedAt() *time.Time        { return o.startedAt }
func (o *ServiceOrder) FinishedAt() *time.Time       { return o.finishedAt }
func (o *ServiceOrder) Description() string          { return o.description }
func (o *ServiceOrder) Complaint() *string           { return o.complaint }
func (o *ServiceOrder) Diagnosis() *string           { return o.diagnosis }
func (o *ServiceOrder) Solution() *string            { return o.solution }
func (o *ServiceOrder) Observations() *string        { return o.observations }
func (o *ServiceOrder) InternalNotes() *string       { return o.internalNotes }
func (o *ServiceOrder) LaborCost() decimal.Decimal   { return o.laborCost }
func (o *ServiceOrder) Discount() decimal.Decimal    { return o.discount }
func (o *ServiceOrder) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *ServiceOrder) MileageAtService() *int       { return o.mileageAtService }
func (o *ServiceOrder) FuelLevel() *FuelLevel        { return o.fuelLevel }
func (o *ServiceOrder) Priority() Priority           { return o.priority }
func (o *ServiceOrder) WarrantyMonths() int          { return o.warrantyMonths }
func (o *ServiceOrder) CreatedAt() time.Time         { return o.createdAt }
func (o *ServiceOrder) UpdatedAt() time.Time         { return o.updatedAt }
func (o *ServiceOrder) DeletedAt() *time.Time        { return o.deletedAt }
func (o *ServiceOrder) IsTerminal() bool             { return o.status.IsTerminal() }

func (o *ServiceOrder) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *ServiceOrder) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("service order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service order ID cannot be zero")
	}
	o.id = id
	for _, it := range o.items {
		it.setServiceID(id)
	}
	return nil
}

// SetServiceNumber assigns a generated number. Reassignment is allowed until
// the order is persisted so that a collision can be retried.
func (o *ServiceOrder) SetServiceNumber(number string) error {
	if o.id != 0 {
		return fmt.Errorf("service number cannot change after creation")
	}
	if number == "" {
		return fmt.Errorf("service number cannot be empty")
	}
	o.serviceNumber = number
	return nil
}

// RecalculateTotal refreshes totalAmount and reports whether it was clamped at zero.
func (o *ServiceOrder) RecalculateTotal() (clamped bool) {
	o.totalAmount, clamped = CalculateTotal(o.items, o.laborCost, o.discount)
	return clamped
}

// AddItem appends a line and recomputes the total. Lines are locked once the
// order reaches a terminal state, and a product may appear only once.
func (o *ServiceOrder) AddItem(item *Item, now time.Time) error {
	if o.IsTerminal() {
		return fieldError("items", fmt.Sprintf("items cannot be changed on a %s service order", o.status), ErrLocked)
	}
	if pid := item.ProductID(); pid != nil {
		for _, existing := range o.items {
			if existing.ProductID() != nil && *existing.ProductID() == *pid {
				return fieldError("product_id", ErrDuplicateProduct.Error(), ErrDuplicateProduct)
			}
		}
	}
	item.setServiceID(o.id)
	o.items = append(o.items, item)
	o.RecalculateTotal()
	o.updatedAt = now
	return nil
}

// RemoveItem drops the line with itemID and recomputes the total.
func (o *ServiceOrder) RemoveItem(itemID uint, now time.Time) (*Item, error) {
	if o.IsTerminal() {
		return nil, fieldError("items", fmt.Sprintf("items cannot be changed on a %s service order", o.status), ErrLocked)
	}
	for i, it := range o.items {
		if it.ID() == itemID {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.RecalculateTotal()
			o.updatedAt = now
			return it, nil
		}
	}
	return nil, ErrItemNotFound
}

// Start moves a scheduled order into progress. technicianID, when given,
// replaces the assigned technician.
func (o *ServiceOrder) Start(technicianID *uint, now time.Time) error {
	if o.status != status.Scheduled {
		return &TransitionError{Event: "start", From: o.status}
	}
	if technicianID != nil && *technicianID != 0 {
		o.technicianID = technicianID
	}
	if o.technicianID == nil {
		return fieldError("technician_id", ErrTechnicianRequired.Error(), ErrTechnicianRequired)
	}

	started := laterOf(now, o.createdAt)
	o.status = status.InProgress
	o.startedAt = &started
	o.updatedAt = now
	return nil
}

// Complete closes an order in progress. paymentMethodID, when given,
// replaces the recorded payment method.
func (o *ServiceOrder) Complete(paymentMethodID *uint, now time.Time) error {
	if o.status != status.InProgress {
		return &TransitionError{Event: "complete", From: o.status}
	}
	if paymentMethodID != nil && *paymentMethodID != 0 {
		o.paymentMethodID = paymentMethodID
	}
	if o.paymentMethodID == nil {
		return fieldError("payment_method_id", ErrPaymentMethodRequired.Error(), ErrPaymentMethodRequired)
	}

	finished := now
	if o.startedAt != nil {
		finished = laterOf(now, *o.startedAt)
	}
	o.status = status.Completed
	o.finishedAt = &finished
	o.updatedAt = now
	return nil
}

// Cancel stops a non-terminal order and appends the reason to observations.
func (o *ServiceOrder) Cancel(reason string, now time.Time) error {
	if !CanTransition(o.status, status.Cancelled) {
		return &TransitionError{Event: "cancel", From: o.status}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fieldError("reason", "reason is required", nil)
	}

	note := "Cancelled: " + reason
	if o.observations != nil && strings.TrimSpace(*o.observations) != "" {
		note = *o.observations + "\n" + note
	}
	o.status = status.Cancelled
	o.observations = &note
	o.startedAt = nil
	o.finishedAt = nil
	o.updatedAt = now
	return nil
}

// UpdateParams is a partial update; nil fields are left untouched.
type UpdateParams struct {
	ClientID         *uint
	VehicleID        *uint
	ServiceCenterID  *uint
	TechnicianID     *uint
	AttendantID      *uint
	PaymentMethodID  *uint
	ScheduledDate    *time.Time
	Description      *string
	Complaint        *string
	Diagnosis        *string
	Solution         *string
	Observations     *string
	InternalNotes    *string
	LaborCost        *decimal.Decimal
	Discount         *decimal.Decimal
	MileageAtService *int
	FuelLevel        *FuelLevel
	Priority         *Priority
	WarrantyMonths   *int
}

// lockedWhenTerminal lists the fields of UpdateParams that a terminal order rejects.
func (p UpdateParams) lockedWhenTerminal() []string {
	var set []string
	check := func(field string, present bool) {
		if present {
			set = append(set, field)
		}
	}
	check("client_id", p.ClientID != nil)
	check("vehicle_id", p.VehicleID != nil)
	check("service_center_id", p.ServiceCenterID != nil)
	check("technician_id", p.TechnicianID != nil)
	check("attendant_id", p.AttendantID != nil)
	check("payment_method_id", p.PaymentMethodID != nil)
	check("scheduled_date", p.ScheduledDate != nil)
	check("description", p.Description != nil)
	check("complaint", p.Complaint != nil)
	check("diagnosis", p.Diagnosis != nil)
	check("solution", p.Solution != nil)
	check("labor_cost", p.LaborCost != nil)
	check("discount", p.Discount != nil)
	check("mileage_at_service", p.MileageAtService != nil)
	check("fuel_level", p.FuelLevel != nil)
	check("priority", p.Priority != nil)
	check("warranty_months", p.WarrantyMonths != nil)
	return set
}

// Update applies p. Terminal orders accept only observations and internal
// notes; client, vehicle and scheduled date change only while scheduled.
// The caller re-validates that the vehicle belongs to the client.
func (o *ServiceOrder) Update(p UpdateParams, now time.Time) (clamped bool, err error) {
	var errs ValidationErrors

	if o.IsTerminal() {
		for _, f := range p.lockedWhenTerminal() {
			errs.add(f, fmt.Sprintf("%s cannot be changed on a %s service order", f, o.status), ErrLocked)
		}
		if err := errs.orNil(); err != nil {
			return false, err
		}
	} else if o.status != status.Scheduled {
		if p.ClientID != nil && *p.ClientID != o.clientID {
			errs.add("client_id", "client_id can only be changed while scheduled", ErrLocked)
		}
		if p.VehicleID != nil && *p.VehicleID != o.vehicleID {
			errs.add("vehicle_id", "vehicle_id can only be changed while scheduled", ErrLocked)
		}
		if p.ScheduledDate != nil {
			errs.add("scheduled_date", "scheduled_date can only be changed while scheduled", ErrLocked)
		}
	}

	if p.Description != nil {
		validateDescription(&errs, *p.Description)
	}
	if p.ScheduledDate != nil && o.status == status.Scheduled {
		validateScheduledDate(&errs, p.ScheduledDate, now)
	}
	if p.LaborCost != nil {
		validateMoney(&errs, "labor_cost", *p.LaborCost)
	}
	if p.Discount != nil {
		validateMoney(&errs, "discount", *p.Discount)
	}
	validateMileage(&errs, p.MileageAtService)
	if p.FuelLevel != nil && !p.FuelLevel.IsValid() {
		errs.add("fuel_level", "fuel_level is invalid", nil)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		errs.add("priority", "priority is invalid", nil)
	}
	if p.WarrantyMonths != nil && *p.WarrantyMonths < 0 {
		errs.add("warranty_months", "warranty_months must be greater than or equal to 0", nil)
	}
	for _, id := range []struct {
		field string
		v     *uint
	}{
		{"client_id", p.ClientID},
		{"vehicle_id", p.VehicleID},
		{"service_center_id", p.ServiceCenterID},
	} {
		if id.v != nil && *id.v == 0 {
			errs.add(id.field, id.field+" is invalid", nil)
		}
	}
	if err := errs.orNil(); err != nil {
		return false, err
	}

	assign(&o.clientID, p.ClientID)
	assign(&o.vehicleID, p.VehicleID)
	assign(&o.serviceCenterID, p.ServiceCenterID)
	assignPtr(&o.technicianID, p.TechnicianID)
	assignPtr(&o.attendantID, p.AttendantID)
	assignPtr(&o.paymentMethodID, p.PaymentMethodID)
	assignPtr(&o.scheduledDate, p.ScheduledDate)
	if p.Description != nil {
		o.description = strings.TrimSpace(*p.Description)
	}
	assignPtr(&o.complaint, p.Complaint)
	assignPtr(&o.diagnosis, p.Diagnosis)
	assignPtr(&o.solution, p.Solution)
	assignPtr(&o.observations, p.Observations)
	assignPtr(&o.internalNotes, p.InternalNotes)
	assign(&o.laborCost, p.LaborCost)
	assign(&o.discount, p.Discount)
	assignPtr(&o.mileageAtService, p.MileageAtService)
	assignPtr(&o.fuelLevel, p.FuelLevel)
	assign(&o.priority, p.Priority)
	assign(&o.warrantyMonths, p.WarrantyMonths)
	o.updatedAt = now

	if p.LaborCost != nil || p.Discount != nil {
		clamped = o.RecalculateTotal()
	}
	return clamped, nil
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func assignPtr[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func validateDescription(errs *ValidationErrors, d string) {
	d = strings.TrimSpace(d)
	if d == "" {
		errs.add("description", "description is required", nil)
	} else if len([]rune(d)) > maxDescriptionLength {
		errs.add("description", fmt.Sprintf("description must be at most %d characters long", maxDescriptionLength), nil)
	}
}

// validateScheduledDate rejects dates before the start of the current business day.
func validateScheduledDate(errs *ValidationErrors, d *time.Time, now time.Time) {
	if d != nil && d.Before(biztime.StartOfDayUTC(now)) {
		errs.add("scheduled_date", "scheduled_date cannot be in the past", nil)
	}
}

func validateMoney(errs *ValidationErrors, field string, v decimal.Decimal) {
	if v.IsNegative() {
		errs.add(field, field+" must be greater than or equal to 0", nil)
	}
}

func validateMileage(errs *ValidationErrors, m *int) {
	if m != nil && *m < 0 {
		errs.add("mileage_at_service", "mileage_at_service must be greater than or equal to 0", nil)
	}
}
