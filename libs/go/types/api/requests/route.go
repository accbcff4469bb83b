package requests

// CreateRouteRequest represents the request body for creating a hunt route
type CreateRouteRequest struct {
	AgeGroup  string   `json:"age_group" binding:"required"`
	Interests []string `json:"interests" binding:"required"`
	Museum    string   `json:"museum,omitempty"`
}

// ListRoutesQuery represents the query string for listing routes
type ListRoutesQuery struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
