package responses

import "github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"

// RouteResponse represents the API view of a hunt route
type RouteResponse struct {
	ID            string   `json:"id"`
	Object        string   `json:"object"`
	EncryptedData string   `json:"encrypted_data"`
	Timestamp     int64    `json:"timestamp"`
	Owner         string   `json:"owner"`
	IsOwner       bool     `json:"is_owner"`
	AgeGroup      string   `json:"age_group"`
	Interests     []string `json:"interests"`
	Status        string   `json:"status"`
}

// RouteListResponse wraps a filtered list of routes
type RouteListResponse struct {
	Object     string          `json:"object"`
	Data       []RouteResponse `json:"data"`
	Refreshing bool            `json:"refreshing"`
}

// RouteStatsResponse wraps snapshot statistics
type RouteStatsResponse struct {
	Object string `json:"object"`
	business.RouteStats
}

// CatalogResponse lists the fixed enumerations the UI offers
type CatalogResponse struct {
	AgeGroups     []string `json:"age_groups"`
	Interests     []string `json:"interests"`
	StatusFilters []string `json:"status_filters"`
}

// AvailabilityResponse reports whether the ledger answered isAvailable
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Backend   string `json:"backend"`
}
