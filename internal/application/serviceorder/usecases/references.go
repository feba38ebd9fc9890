package usecases

import (
	"context"
	stderrors "errors"

	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
)

// referenceChecker validates the foreign keys of an order against the
// registries. Missing or inactive rows become field errors; only storage
// failures are returned.
type referenceChecker struct {
	clients  client.Repository
	vehicles vehicle.Repository
	centers  servicecenter.Repository
	users    user.Repository
	payments payment.Repository
}

func (c *referenceChecker) clientAndVehicle(ctx context.Context, fe fieldErrors, clientID, vehicleID uint) error {
	if clientID != 0 {
		if _, err := c.clients.GetByID(ctx, clientID); err != nil {
			if !stderrors.Is(err, client.ErrNotFound) {
				return err
			}
			fe.add("client_id", "The selected client_id is invalid.")
		}
	}
	if vehicleID == 0 {
		return nil
	}
	v, err := c.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if !stderrors.Is(err, vehicle.ErrNotFound) {
			return err
		}
		fe.add("vehicle_id", "The selected vehicle_id is invalid.")
		return nil
	}
	if clientID != 0 && !v.BelongsTo(clientID) {
		fe.add("vehicle_id", "The vehicle does not belong to the selected client.")
	}
	return nil
}

func (c *referenceChecker) center(ctx context.Context, fe fieldErrors, id uint) error {
	if id == 0 {
		return nil
	}
	sc, err := c.centers.GetByID(ctx, id)
	if err != nil {
		if !stderrors.Is(err, servicecenter.ErrNotFound) {
			return err
		}
		fe.add("service_center_id", "The selected service_center_id is invalid.")
		return nil
	}
	if !sc.IsActive() {
		fe.add("service_center_id", "The selected service center is inactive.")
	}
	return nil
}

// staff checks that id references an active user.
func (c *referenceChecker) staff(ctx context.Context, fe fieldErrors, field string, id *uint) error {
	if id == nil {
		return nil
	}
	u, err := c.users.GetByID(ctx, *id)
	if err != nil {
		if !stderrors.Is(err, user.ErrNotFound) {
			return err
		}
		fe.add(field, "The selected %s is invalid.", field)
		return nil
	}
	if !u.IsActive() {
		fe.add(field, "The selected %s is inactive.", field)
	}
	return nil
}

func (c *referenceChecker) paymentMethod(ctx context.Context, fe fieldErrors, id *uint) error {
	if id == nil {
		return nil
	}
	pm, err := c.payments.GetByID(ctx, *id)
	if err != nil {
		if !stderrors.Is(err, payment.ErrNotFound) {
			return err
		}
		fe.add("payment_method_id", "The selected payment_method_id is invalid.")
		return nil
	}
	if !pm.IsActive() {
		fe.add("payment_method_id", "The selected payment method is inactive.")
	}
	return nil
}
