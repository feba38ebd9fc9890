package models

import (
	"time"

	"gorm.io/datatypes"

	"garage/internal/shared/constants"
)

type ServiceStatusModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:30;not null"`
	Label     string `gorm:"size:50;not null"`
	Color     string `gorm:"size:20"`
	SortOrder int    `gorm:"not null;default:0"`
}

func (ServiceStatusModel) TableName() string {
	return constants.TableServiceStatuses
}

type ServiceStatusHistoryModel struct {
	ID           uint `gorm:"primaryKey"`
	ServiceID    uint `gorm:"not null;index"`
	FromStatusID *uint
	ToStatusID   uint `gorm:"not null"`
	ChangedBy    *uint
	Reason       *string           `gorm:"type:text"`
	Metadata     datatypes.JSONMap `gorm:"type:json"`
	CreatedAt    time.Time         `gorm:"not null;index"`
}

func (ServiceStatusHistoryModel) TableName() string {
	return constants.TableServiceStatusHistory
}
