package dto

import (
	"math"
	"time"

	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/status"
)

type ServiceCenterDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Address    *string   `json:"address,omitempty"`
	City       *string   `json:"city,omitempty"`
	State      *string   `json:"state,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Active     bool      `json:"active"`
	DistanceKm *float64  `json:"distance_km,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProductDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Description   *string   `json:"description,omitempty"`
	Price         string    `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	MinStock      int       `json:"min_stock"`
	Unit          string    `json:"unit"`
	Active        bool      `json:"active"`
	LowStock      bool      `json:"low_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type PaymentMethodDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

type StatusDTO struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Label      string `json:"label"`
	Color      string `json:"color"`
	SortOrder  int    `json:"sort_order"`
	IsTerminal bool   `json:"is_terminal"`
}

func ToServiceCenterDTO(c *servicecenter.ServiceCenter) ServiceCenterDTO {
	return ServiceCenterDTO{
		ID:        c.ID(),
		Name:      c.Name(),
		Code:      c.Code(),
		Address:   c.Address(),
		City:      c.City(),
		State:     c.State(),
		Phone:     c.Phone(),
		Email:     c.Email(),
		Latitude:  c.Latitude(),
		Longitude: c.Longitude(),
		Active:    c.IsActive(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// ToNearbyDTO adds the distance rounded to two decimals.
func ToNearbyDTO(n servicecenter.Nearby) ServiceCenterDTO {
	d := ToServiceCenterDTO(n.Center)
	km := math.Round(n.DistanceKm*100) / 100
	d.DistanceKm = &km
	return d
}

func ToProductDTO(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		SKU:           p.SKU(),
		Description:   p.Description(),
		Price:         p.Price().StringFixed(2),
		StockQuantity: p.StockQuantity(),
		MinStock:      p.MinStock(),
		Unit:          p.Unit(),
		Active:        p.IsActive(),
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ToPaymentMethodDTO(m *payment.PaymentMethod) PaymentMethodDTO {
	return PaymentMethodDTO{ID: m.ID(), Name: m.Name(), Slug: m.Slug(), Active: m.IsActive()}
}

func ToStatusDTO(s *status.Status) StatusDTO {
	return StatusDTO{
		ID:         s.ID(),
		Name:       s.Name().String(),
		Label:      s.Label(),
		Color:      s.Color(),
		SortOrder:  s.SortOrder(),
		IsTerminal: s.IsTerminal(),
	}
}
