package params

import "github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"

// CreateRouteParams contains parameters for creating a hunt route
type CreateRouteParams struct {
	AgeGroup  string
	Interests []string
	Museum    string
}

// TransitionRouteParams contains parameters for moving a route to a new status
type TransitionRouteParams struct {
	RouteID string
	Target  business.RouteStatus
}
