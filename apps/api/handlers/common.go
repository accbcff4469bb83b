package handlers

import (
	"errors"
	"net/http"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/helpers"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/middleware"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/services"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/api/responses"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// Use types from the centralized packages
type (
	ErrorResponse   = responses.ErrorResponse
	SuccessResponse = responses.SuccessResponse
)

// errorBody is ErrorResponse plus the correlation id, for debugging
type errorBody struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// sendError logs err and writes a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := middleware.GetCorrelationID(c)

	log := middleware.LogWithCorrelationID(c.Request.Context())
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", statusCode),
	}
	if statusCode >= http.StatusInternalServerError {
		log.Error(message, fields...)
	} else {
		log.Warn(message, fields...)
	}

	c.JSON(statusCode, errorBody{Error: message, CorrelationID: correlationID})
}

// sendServiceError maps a service error onto an HTTP status. The full chain
// is logged; the client sees the message of the root service error.
func sendServiceError(c *gin.Context, err error) {
	sendError(c, statusForError(err), pkgerrors.Cause(err).Error(), err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoWallet):
		return http.StatusUnauthorized
	case helpers.IsUserRejection(err):
		return http.StatusForbidden
	case errors.Is(err, services.ErrRouteNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrLedgerUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// toRouteResponse converts a route to its API view for the given session account
func toRouteResponse(route business.Route, account string) responses.RouteResponse {
	return responses.RouteResponse{
		ID:            route.ID,
		Object:        "route",
		EncryptedData: string(route.EncryptedData),
		Timestamp:     route.Timestamp,
		Owner:         route.Owner,
		IsOwner:       helpers.IsRouteOwner(route, account),
		AgeGroup:      route.AgeGroup,
		Interests:     helpers.SortInterests(route.Interests),
		Status:        string(route.Status),
	}
}

func toRouteResponses(routes []business.Route, account string) []responses.RouteResponse {
	out := make([]responses.RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteResponse(r, account))
	}
	return out
}
