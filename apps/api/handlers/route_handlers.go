package handlers

import (
	"net/http"
	"strings"

	"github.com/0rsallylim46/MuseumHuntFHE/apps/api/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/interfaces"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/services"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/params"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/requests"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/responses"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// RouteHandler serves the hunt route list and its lifecycle operations
type RouteHandler struct {
	routes  interfaces.RouteService
	session *services.SessionState
}

// Use types from the centralized packages
type (
	CreateRouteRequest = requests.CreateRouteRequest
	ListRoutesQuery    = requests.ListRoutesQuery
	RouteResponse      = responses.RouteResponse
	RouteListResponse  = responses.RouteListResponse
	RouteStatsResponse = responses.RouteStatsResponse
)

// NewRouteHandler creates a new route handler
func NewRouteHandler(routes interfaces.RouteService, session *services.SessionState) *RouteHandler {
	return &RouteHandler{routes: routes, session: session}
}

// ListRoutes godoc
// @Summary List hunt routes
// @Description Filters the current route snapshot by interest search term and status
// @Tags routes
// @Produce json
// @Param search query string false "Case-insensitive interest substring"
// @Param status query string false "all, pending, active or completed"
// @Success 200 {object} RouteListResponse
// @Failure 400 {object} ErrorResponse
// @Router /routes [get]
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	var query ListRoutesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	if !isStatusFilter(query.Status) {
		sendError(c, http.StatusBadRequest, constants.InvalidStatusFilter, nil)
		return
	}

	state := h.session.Snapshot()
	filtered := helpers.FilterRoutes(state.Routes, query.Search, query.Status)

	sendSuccess(c, http.StatusOK, RouteListResponse{
		Object:     "list",
		Data:       toRouteResponses(filtered, state.Account),
		Refreshing: h.routes.IsRefreshing(),
	})
}

// GetRouteStats godoc
// @Summary Route statistics
// @Description Counts the routes in the current snapshot per status
// @Tags routes
// @Produce json
// @Success 200 {object} RouteStatsResponse
// @Router /routes/stats [get]
func (h *RouteHandler) GetRouteStats(c *gin.Context) {
	state := h.session.Snapshot()
	sendSuccess(c, http.StatusOK, RouteStatsResponse{
		Object:     "route_stats",
		RouteStats: helpers.CountByStatus(state.Routes),
	})
}

// RefreshRoutes godoc
// @Summary Reload routes from the ledger
// @Description Rebuilds the snapshot from the ledger index. An unavailable ledger leaves the previous snapshot in place.
// @Tags routes
// @Produce json
// @Success 200 {object} RouteListResponse
// @Router /routes/refresh [post]
func (h *RouteHandler) RefreshRoutes(c *gin.Context) {
	state := h.session.Refresh(c.Request.Context(), h.routes)
	sendSuccess(c, http.StatusOK, RouteListResponse{
		Object: "list",
		Data:   toRouteResponses(state.Routes, state.Account),
	})
}

// CreateRoute godoc
// @Summary Generate a hunt route
// @Description Encrypts the submitted preferences and writes a new pending route to the ledger
// @Tags routes
// @Accept json
// @Produce json
// @Param body body CreateRouteRequest true "Route preferences"
// @Success 201 {object} RouteListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes [post]
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}

	state, err := h.routes.Create(c.Request.Context(), h.session.Snapshot(), params.CreateRouteParams{
		AgeGroup:  strings.TrimSpace(req.AgeGroup),
		Interests: req.Interests,
		Museum:    strings.TrimSpace(req.Museum),
	})
	if err != nil {
		sendServiceError(c, errors.Wrap(err, "create route"))
		return
	}
	state = h.session.Commit(state)

	sendSuccess(c, http.StatusCreated, RouteListResponse{
		Object: "list",
		Data:   toRouteResponses(state.Routes, state.Account),
	})
}

// ActivateRoute godoc
// @Summary Activate a hunt route
// @Description Runs the simulated FHE processing step and moves the route to active
// @Tags routes
// @Produce json
// @Param route_id path string true "Route ID"
// @Success 200 {object} RouteResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/{route_id}/activate [post]
func (h *RouteHandler) ActivateRoute(c *gin.Context) {
	h.transition(c, business.RouteStatusActive)
}

// CompleteRoute godoc
// @Summary Complete a hunt route
// @Description Runs the simulated FHE processing step and moves the route to completed
// @Tags routes
// @Produce json
// @Param route_id path string true "Route ID"
// @Success 200 {object} RouteResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/{route_id}/complete [post]
func (h *RouteHandler) CompleteRoute(c *gin.Context) {
	h.transition(c, business.RouteStatusCompleted)
}

func (h *RouteHandler) transition(c *gin.Context, target business.RouteStatus) {
	routeID := strings.TrimSpace(c.Param("route_id"))
	if routeID == "" {
		sendError(c, http.StatusBadRequest, constants.InvalidRouteID, nil)
		return
	}

	state, err := h.routes.Transition(c.Request.Context(), h.session.Snapshot(), params.TransitionRouteParams{
		RouteID: routeID,
		Target:  target,
	})
	if err != nil {
		sendServiceError(c, errors.Wrapf(err, "move route %s to %s", routeID, target))
		return
	}
	state = h.session.Commit(state)

	for _, r := range state.Routes {
		if r.ID == routeID {
			sendSuccess(c, http.StatusOK, toRouteResponse(r, state.Account))
			return
		}
	}
	// The write landed but the reload could not see it, e.g. the ledger dropped out.
	sendSuccess(c, http.StatusOK, RouteResponse{ID: routeID, Object: "route", Status: string(target)})
}

func isStatusFilter(status string) bool {
	if status == "" {
		return true
	}
	for _, f := range business.StatusFilters {
		if f == status {
			return true
		}
	}
	return false
}
