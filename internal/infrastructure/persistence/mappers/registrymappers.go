package mappers

import (
	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/status"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
	"garage/internal/infrastructure/persistence/models"
	"garage/internal/shared/authorization"
)

func StatusToDomain(m *models.ServiceStatusModel) (*status.Status, error) {
	return status.NewStatus(m.ID, status.Name(m.Name), m.Label, m.Color, m.SortOrder)
}

func ClientToModel(c *client.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Document:  c.Document(),
		Address:   c.Address(),
		Notes:     c.Notes(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func ClientToDomain(m *models.ClientModel) *client.Client {
	return client.ReconstructClient(m.ID, m.Name, m.Email, m.Phone, m.Document, m.Address, m.Notes, m.CreatedAt, m.UpdatedAt)
}

func VehicleToModel(v *vehicle.Vehicle) *models.VehicleModel {
	return &models.VehicleModel{
		ID:        v.ID(),
		ClientID:  v.ClientID(),
		Plate:     v.Plate(),
		Brand:     v.Brand(),
		Model:     v.Model(),
		Year:      v.Year(),
		Color:     v.Color(),
		Mileage:   v.Mileage(),
		CreatedAt: v.CreatedAt(),
		UpdatedAt: v.UpdatedAt(),
	}
}

func VehicleToDomain(m *models.VehicleModel) *vehicle.Vehicle {
	return vehicle.ReconstructVehicle(m.ID, m.ClientID, m.Plate, m.Brand, m.Model, m.Year, m.Color, m.Mileage, m.CreatedAt, m.UpdatedAt)
}

func ServiceCenterToModel(s *servicecenter.ServiceCenter) *models.ServiceCenterModel {
	return &models.ServiceCenterModel{
		ID:        s.ID(),
		Name:      s.Name(),
		Code:      s.Code(),
		Address:   s.Address(),
		City:      s.City(),
		State:     s.State(),
		Phone:     s.Phone(),
		Email:     s.Email(),
		Latitude:  s.Latitude(),
		Longitude: s.Longitude(),
		Active:    s.IsActive(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func ServiceCenterToDomain(m *models.ServiceCenterModel) *servicecenter.ServiceCenter {
	return servicecenter.ReconstructServiceCenter(m.ID, servicecenter.Params{
		Name:      m.Name,
		Code:      m.Code,
		Address:   m.Address,
		City:      m.City,
		State:     m.State,
		Phone:     m.Phone,
		Email:     m.Email,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}, m.Active, m.CreatedAt, m.UpdatedAt)
}

func ProductToModel(p *product.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:            p.ID(),
		Name:          p.Name(),
		SKU:           p.SKU(),
		Description:   p.Description(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
		MinStock:      p.MinStock(),
		Unit:          p.Unit(),
		Active:        p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ProductToDomain(m *models.ProductModel) *product.Product {
	return product.ReconstructProduct(m.ID, m.Name, m.SKU, m.Description, m.Price, m.StockQuantity, m.MinStock, m.Unit, m.Active, m.CreatedAt, m.UpdatedAt)
}

func PaymentMethodToDomain(m *models.PaymentMethodModel) *payment.PaymentMethod {
	return payment.NewPaymentMethod(m.ID, m.Name, m.Slug, m.Active)
}

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:              u.ID(),
		Name:            u.Name(),
		Email:           u.Email(),
		PasswordHash:    u.PasswordHash(),
		Role:            u.Role().String(),
		ServiceCenterID: u.ServiceCenterID(),
		Active:          u.IsActive(),
		LastLoginAt:     u.LastLoginAt(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}

func UserToDomain(m *models.UserModel) *user.User {
	return user.ReconstructUser(m.ID, m.Name, m.Email, m.PasswordHash, authorization.ParseUserRole(m.Role), m.ServiceCenterID, m.Active, m.LastLoginAt, m.CreatedAt, m.UpdatedAt)
}
