package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"garage/internal/shared/constants"
)

type ServiceModel struct {
	ID               uint   `gorm:"primaryKey"`
	ServiceNumber    string `gorm:"uniqueIndex:uk_services_number;size:30;not null"`
	ClientID         uint   `gorm:"not null;index"`
	VehicleID        uint   `gorm:"not null;index"`
	ServiceCenterID  uint   `gorm:"not null;index:idx_services_center_status"`
	TechnicianID     *uint  `gorm:"index"`
	AttendantID      *uint  `gorm:"index"`
	PaymentMethodID  *uint
	StatusID         uint       `gorm:"not null;index:idx_services_center_status"`
	ScheduledDate    *time.Time `gorm:"index"`
	StartedAt        *time.Time
	FinishedAt       *time.Time      `gorm:"index"`
	Description      string          `gorm:"size:255;not null"`
	Complaint        *string         `gorm:"type:text"`
	Diagnosis        *string         `gorm:"type:text"`
	Solution         *string         `gorm:"type:text"`
	Observations     *string         `gorm:"type:text"`
	InternalNotes    *string         `gorm:"type:text"`
	LaborCost        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Discount         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MileageAtService *int
	FuelLevel        *string        `gorm:"size:10"`
	Priority         string         `gorm:"size:10;not null;default:normal"`
	WarrantyMonths   int            `gorm:"not null;default:0"`
	CreatedAt        time.Time      `gorm:"not null;index"`
	UpdatedAt        time.Time      `gorm:"not null"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ServiceModel) TableName() string {
	return constants.TableServices
}

type ServiceItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	ServiceID uint            `gorm:"not null;index"`
	ProductID *uint           `gorm:"index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes     *string         `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (ServiceItemModel) TableName() string {
	return constants.TableServiceItems
}
