package dto

import (
	"time"

	"garage/internal/domain/client"
	"garage/internal/domain/vehicle"
)

type VehicleDTO struct {
	ID        uint      `json:"id"`
	ClientID  uint      `json:"client_id"`
	Plate     string    `json:"plate"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      *int      `json:"year,omitempty"`
	Color     *string   `json:"color,omitempty"`
	Mileage   int       `json:"mileage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientDTO struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Email     *string      `json:"email,omitempty"`
	Phone     string       `json:"phone"`
	Document  string       `json:"document"`
	Address   *string      `json:"address,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
	Vehicles  []VehicleDTO `json:"vehicles,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func ToVehicleDTO(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
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

// ToClientDTO converts c. vehicles may be nil for list responses.
func ToClientDTO(c *client.Client, vehicles []*vehicle.Vehicle) ClientDTO {
	d := ClientDTO{
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
	if vehicles != nil {
		d.Vehicles = make([]VehicleDTO, 0, len(vehicles))
		for _, v := range vehicles {
			d.Vehicles = append(d.Vehicles, ToVehicleDTO(v))
		}
	}
	return d
}
