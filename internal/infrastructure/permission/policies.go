package permission

import (
	"garage/internal/shared/authorization"
)

type Resource string

type Action string

const (
	ResourceAll            Resource = "*"
	ResourceServices       Resource = "services"
	ResourceClients        Resource = "clients"
	ResourceVehicles       Resource = "vehicles"
	ResourceProducts       Resource = "products"
	ResourceServiceCenters Resource = "service_centers"
	ResourceUsers          Resource = "users"
	ResourceCatalog        Resource = "catalog"
)

const (
	ActionAll      Action = "*"
	ActionRead     Action = "read"
	ActionWrite    Action = "write"
	ActionDelete   Action = "delete"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionItems    Action = "items"
	ActionExport   Action = "export"
	ActionStats    Action = "stats"
)

type Policy struct {
	Role     authorization.UserRole
	Resource Resource
	Action   Action
}

func grant(role authorization.UserRole, resource Resource, actions ...Action) []Policy {
	out := make([]Policy, 0, len(actions))
	for _, a := range actions {
		out = append(out, Policy{Role: role, Resource: resource, Action: a})
	}
	return out
}

// DefaultPolicies is the built-in role matrix.
func DefaultPolicies() []Policy {
	var p []Policy

	p = append(p, grant(authorization.RoleAdmin, ResourceAll, ActionAll)...)

	manager := authorization.RoleManager
	p = append(p, grant(manager, ResourceServices,
		ActionRead, ActionWrite, ActionDelete, ActionStart, ActionComplete,
		ActionCancel, ActionItems, ActionExport, ActionStats)...)
	p = append(p, grant(manager, ResourceClients, ActionRead, ActionWrite, ActionDelete)...)
	p = append(p, grant(manager, ResourceVehicles, ActionRead, ActionWrite)...)
	p = append(p, grant(manager, ResourceProducts, ActionRead, ActionWrite)...)
	p = append(p, grant(manager, ResourceServiceCenters, ActionRead, ActionWrite)...)
	p = append(p, grant(manager, ResourceUsers, ActionRead)...)
	p = append(p, grant(manager, ResourceCatalog, ActionRead)...)

	attendant := authorization.RoleAttendant
	p = append(p, grant(attendant, ResourceServices,
		ActionRead, ActionWrite, ActionCancel, ActionItems, ActionStats)...)
	p = append(p, grant(attendant, ResourceClients, ActionRead, ActionWrite)...)
	p = append(p, grant(attendant, ResourceVehicles, ActionRead, ActionWrite)...)
	p = append(p, grant(attendant, ResourceProducts, ActionRead)...)
	p = append(p, grant(attendant, ResourceServiceCenters, ActionRead)...)
	p = append(p, grant(attendant, ResourceCatalog, ActionRead)...)

	technician := authorization.RoleTechnician
	p = append(p, grant(technician, ResourceServices,
		ActionRead, ActionStart, ActionComplete, ActionItems)...)
	p = append(p, grant(technician, ResourceClients, ActionRead)...)
	p = append(p, grant(technician, ResourceVehicles, ActionRead)...)
	p = append(p, grant(technician, ResourceProducts, ActionRead)...)
	p = append(p, grant(technician, ResourceServiceCenters, ActionRead)...)
	p = append(p, grant(technician, ResourceCatalog, ActionRead)...)

	return p
}
