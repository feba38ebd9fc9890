package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"garage/internal/shared/constants"
)

type ClientModel struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:150;not null;index"`
	Email     *string `gorm:"size:150"`
	Phone     string  `gorm:"size:30;index"`
	Document  string  `gorm:"size:20;index"`
	Address   *string `gorm:"type:text"`
	Notes     *string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ClientModel) TableName() string {
	return constants.TableClients
}

type VehicleModel struct {
	ID        uint   `gorm:"primaryKey"`
	ClientID  uint   `gorm:"not null;index"`
	Plate     string `gorm:"uniqueIndex;size:10;not null"`
	Brand     string `gorm:"size:50;not null"`
	Model     string `gorm:"size:50;not null"`
	Year      *int
	Color     *string `gorm:"size:30"`
	Mileage   int     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (VehicleModel) TableName() string {
	return constants.TableVehicles
}

type ServiceCenterModel struct {
	ID        uint     `gorm:"primaryKey"`
	Name      string   `gorm:"size:100;not null"`
	Code      string   `gorm:"uniqueIndex;size:20;not null"`
	Address   *string  `gorm:"size:255"`
	City      *string  `gorm:"size:100"`
	State     *string  `gorm:"size:2"`
	Phone     *string  `gorm:"size:30"`
	Email     *string  `gorm:"size:150"`
	Latitude  *float64 `gorm:"type:decimal(10,7);index:idx_service_centers_geo"`
	Longitude *float64 `gorm:"type:decimal(10,7);index:idx_service_centers_geo"`
	Active    bool     `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ServiceCenterModel) TableName() string {
	return constants.TableServiceCenters
}

type ProductModel struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:150;not null;index"`
	SKU           string          `gorm:"column:sku;uniqueIndex;size:50;not null"`
	Description   *string         `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	MinStock      int             `gorm:"not null;default:0"`
	Unit          string          `gorm:"size:10;not null;default:un"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ProductModel) TableName() string {
	return constants.TableProducts
}

type PaymentMethodModel struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:50;not null"`
	Slug   string `gorm:"uniqueIndex;size:30;not null"`
	Active bool   `gorm:"not null;default:true"`
}

func (PaymentMethodModel) TableName() string {
	return constants.TablePaymentMethods
}

type UserModel struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:100;not null"`
	Email           string `gorm:"uniqueIndex;size:150;not null"`
	PasswordHash    string `gorm:"size:255;not null"`
	Role            string `gorm:"size:20;not null;index"`
	ServiceCenterID *uint  `gorm:"index"`
	Active          bool   `gorm:"not null;default:true"`
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

// All returns every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&ServiceStatusModel{},
		&PaymentMethodModel{},
		&ServiceCenterModel{},
		&UserModel{},
		&ClientModel{},
		&VehicleModel{},
		&ProductModel{},
		&ServiceModel{},
		&ServiceItemModel{},
		&ServiceStatusHistoryModel{},
	}
}
