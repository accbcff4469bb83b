package handlers

import (
	"net/http"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/responses"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"

	"github.com/gin-gonic/gin"
)

// LedgerHandler reports on the ledger backing the routes
type LedgerHandler struct {
	routes  interfaces.RouteService
	backend string
}

// Use types from the centralized packages
type AvailabilityResponse = responses.AvailabilityResponse

// NewLedgerHandler creates a new ledger handler. backend names the configured ledger.
func NewLedgerHandler(routes interfaces.RouteService, backend string) *LedgerHandler {
	return &LedgerHandler{routes: routes, backend: backend}
}

// CheckAvailability godoc
// @Summary Check FHE ledger availability
// @Description Calls isAvailable on the ledger and raises a notification with the answer
// @Tags ledger
// @Produce json
// @Success 200 {object} AvailabilityResponse
// @Failure 503 {object} ErrorResponse
// @Router /ledger/availability [post]
func (h *LedgerHandler) CheckAvailability(c *gin.Context) {
	available, err := h.routes.CheckAvailability(c.Request.Context())
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, AvailabilityResponse{Available: available, Backend: h.backend})
}

// CatalogHandler serves the fixed enumerations the create form and filters use
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// GetCatalog godoc
// @Summary Route catalog
// @Description Lists the age groups, interest tags and status filters
// @Tags catalog
// @Produce json
// @Success 200 {object} responses.CatalogResponse
// @Router /catalog [get]
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	sendSuccess(c, http.StatusOK, responses.CatalogResponse{
		AgeGroups:     business.AgeGroups,
		Interests:     business.InterestCatalog,
		StatusFilters: business.StatusFilters,
	})
}
