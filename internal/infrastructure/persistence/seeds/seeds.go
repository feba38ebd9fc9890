// Package seeds loads reference and demo rows from embedded YAML files.
package seeds

import (
	"context"
	"embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/authorization"
)

//go:embed data/*.yaml
var dataFS embed.FS

type statusSeed struct {
	Name      string `yaml:"name"`
	Label     string `yaml:"label"`
	Color     string `yaml:"color"`
	SortOrder int    `yaml:"sort_order"`
}

type paymentMethodSeed struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type referenceData struct {
	ServiceStatuses []statusSeed        `yaml:"service_statuses"`
	PaymentMethods  []paymentMethodSeed `yaml:"payment_methods"`
}

type serviceCenterSeed struct {
	Name      string   `yaml:"name"`
	Code      string   `yaml:"code"`
	Address   string   `yaml:"address"`
	City      string   `yaml:"city"`
	State     string   `yaml:"state"`
	Phone     string   `yaml:"phone"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

type productSeed struct {
	Name          string `yaml:"name"`
	SKU           string `yaml:"sku"`
	Price         string `yaml:"price"`
	StockQuantity int    `yaml:"stock_quantity"`
	MinStock      int    `yaml:"min_stock"`
	Unit          string `yaml:"unit"`
}

type demoData struct {
	ServiceCenters []serviceCenterSeed `yaml:"service_centers"`
	Products       []productSeed       `yaml:"products"`
}

func load(name string, out any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", name, err)
	}
	return nil
}

// SeedReferenceData inserts the service statuses and payment methods that
// are missing. Existing rows are left untouched, so it is safe on every start.
func SeedReferenceData(ctx context.Context, db *gorm.DB) error {
	var data referenceData
	if err := load("reference.yaml", &data); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range data.ServiceStatuses {
			row := models.ServiceStatusModel{Name: s.Name}
			if err := tx.Where("name = ?", s.Name).
				Attrs(models.ServiceStatusModel{Label: s.Label, Color: s.Color, SortOrder: s.SortOrder}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("failed to seed service status %s: %w", s.Name, err)
			}
		}
		for _, pm := range data.PaymentMethods {
			row := models.PaymentMethodModel{Slug: pm.Slug}
			if err := tx.Where("slug = ?", pm.Slug).
				Attrs(models.PaymentMethodModel{Name: pm.Name, Active: true}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("failed to seed payment method %s: %w", pm.Slug, err)
			}
		}
		return nil
	})
}

// SeedDemoData inserts example service centers and products keyed by code/sku.
func SeedDemoData(ctx context.Context, db *gorm.DB) error {
	var data demoData
	if err := load("demo.yaml", &data); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sc := range data.ServiceCenters {
			row := models.ServiceCenterModel{Code: sc.Code}
			if err := tx.Where("code = ?", sc.Code).
				Attrs(models.ServiceCenterModel{
					Name:      sc.Name,
					Address:   optional(sc.Address),
					City:      optional(sc.City),
					State:     optional(sc.State),
					Phone:     optional(sc.Phone),
					Latitude:  sc.Latitude,
					Longitude: sc.Longitude,
					Active:    true,
				}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("failed to seed service center %s: %w", sc.Code, err)
			}
		}
		for _, p := range data.Products {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return fmt.Errorf("invalid price for product %s: %w", p.SKU, err)
			}
			row := models.ProductModel{SKU: p.SKU}
			if err := tx.Where("sku = ?", p.SKU).
				Attrs(models.ProductModel{
					Name:          p.Name,
					Price:         price,
					StockQuantity: p.StockQuantity,
					MinStock:      p.MinStock,
					Unit:          p.Unit,
					Active:        true,
				}).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.SKU, err)
			}
		}
		return nil
	})
}

// SeedAdmin creates the first administrator when no user has that email.
// Returns true when a row was inserted.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, passwordHash string) (bool, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.UserModel{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to check admin user: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	row := &models.UserModel{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         authorization.RoleAdmin.String(),
		Active:       true,
	}
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return false, fmt.Errorf("failed to seed admin user: %w", err)
	}
	return true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
