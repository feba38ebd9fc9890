package usecases

import (
	"context"
	"fmt"

	"garage/internal/application/serviceorder/dto"
	"garage/internal/domain/client"
	"garage/internal/domain/payment"
	"garage/internal/domain/product"
	"garage/internal/domain/servicecenter"
	"garage/internal/domain/serviceorder"
	"garage/internal/domain/status"
	"garage/internal/domain/user"
	"garage/internal/domain/vehicle"
)

// Enricher loads the records referenced by a batch of orders with one query
// per collaborator and renders DTOs.
type Enricher struct {
	statuses status.Registry
	clients  client.Repository
	vehicles vehicle.Repository
	centers  servicecenter.Repository
	users    user.Repository
	payments payment.Repository
	products product.Repository
}

func NewEnricher(
	statuses status.Registry,
	clients client.Repository,
	vehicles vehicle.Repository,
	centers servicecenter.Repository,
	users user.Repository,
	payments payment.Repository,
	products product.Repository,
) *Enricher {
	return &Enricher{
		statuses: statuses,
		clients:  clients,
		vehicles: vehicles,
		centers:  centers,
		users:    users,
		payments: payments,
		products: products,
	}
}

func (e *Enricher) Load(ctx context.Context, orders []*serviceorder.ServiceOrder) (*dto.Related, error) {
	rel := &dto.Related{
		Statuses:       map[status.Name]*status.Status{},
		Centers:        map[uint]*servicecenter.ServiceCenter{},
		PaymentMethods: map[uint]*payment.PaymentMethod{},
	}

	all, err := e.statuses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	for _, s := range all {
		rel.Statuses[s.Name()] = s
	}
	if len(orders) == 0 {
		return rel, nil
	}

	var clientIDs, vehicleIDs, userIDs, productIDs []uint
	paymentIDs := map[uint]bool{}
	for _, o := range orders {
		clientIDs = append(clientIDs, o.ClientID())
		vehicleIDs = append(vehicleIDs, o.VehicleID())
		if id := o.TechnicianID(); id != nil {
			userIDs = append(userIDs, *id)
		}
		if id := o.AttendantID(); id != nil {
			userIDs = append(userIDs, *id)
		}
		if id := o.PaymentMethodID(); id != nil {
			paymentIDs[*id] = true
		}
		for _, it := range o.Items() {
			if pid := it.ProductID(); pid != nil {
				productIDs = append(productIDs, *pid)
			}
		}
	}

	if rel.Clients, err = e.clients.GetByIDs(ctx, unique(clientIDs)); err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	if rel.Vehicles, err = e.vehicles.GetByIDs(ctx, unique(vehicleIDs)); err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	if rel.Users, err = e.users.GetByIDs(ctx, unique(userIDs)); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if rel.Products, err = e.products.GetByIDs(ctx, unique(productIDs)); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	centers, err := e.centers.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load service centers: %w", err)
	}
	for _, c := range centers {
		rel.Centers[c.ID()] = c
	}

	if len(paymentIDs) > 0 {
		active, err := e.payments.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load payment methods: %w", err)
		}
		for _, pm := range active {
			rel.PaymentMethods[pm.ID()] = pm
		}
		// inactive methods are still shown on old orders
		for id := range paymentIDs {
			if _, ok := rel.PaymentMethods[id]; ok {
				continue
			}
			pm, err := e.payments.GetByID(ctx, id)
			if err != nil {
				continue
			}
			rel.PaymentMethods[id] = pm
		}
	}
	return rel, nil
}

// One renders a single order together with its history.
func (e *Enricher) One(ctx context.Context, o *serviceorder.ServiceOrder, history []*serviceorder.StatusChange) (*dto.ServiceOrderDTO, error) {
	rel, err := e.Load(ctx, []*serviceorder.ServiceOrder{o})
	if err != nil {
		return nil, err
	}
	d := dto.ToServiceOrderDTO(o, rel)
	if history != nil {
		d.History = dto.ToHistoryDTOs(history)
	}
	return d, nil
}

func (e *Enricher) Many(ctx context.Context, orders []*serviceorder.ServiceOrder) ([]*dto.ServiceOrderDTO, error) {
	rel, err := e.Load(ctx, orders)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceOrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToServiceOrderDTO(o, rel))
	}
	return out, nil
}

func unique(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
