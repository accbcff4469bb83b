package constants

// Error messages returned by the API handlers
const (
	InvalidRequestBody  = "invalid request body"
	InvalidRouteID      = "route id is required"
	InvalidStatusFilter = "status must be one of all, pending, active, completed"
	InternalError       = "internal server error"

	// Common string values
	TrueString = "true"
)
