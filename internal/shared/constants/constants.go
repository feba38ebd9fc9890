package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Pagination
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	APIPrefix = "/api/v1"

	// Gin context keys set by the auth middleware
	ContextKeyUserID          = "user_id"
	ContextKeyUserRole        = "user_role"
	ContextKeyServiceCenterID = "service_center_id"
	ContextKeyRequestID       = "request_id"

	// Table names
	TableServices             = "services"
	TableServiceItems         = "service_items"
	TableServiceStatuses      = "service_statuses"
	TableServiceStatusHistory = "service_status_histories"
	TableClients              = "clients"
	TableVehicles             = "vehicles"
	TableServiceCenters       = "service_centers"
	TableProducts             = "products"
	TablePaymentMethods       = "payment_methods"
	TableUsers                = "users"
)
