package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wayfarer-travel/service-travel/internal/application"
	"github.com/wayfarer-travel/service-travel/internal/domain/activity"
	"github.com/wayfarer-travel/service-travel/internal/platform/response"
)

// TravelHandler handles HTTP requests for routes and activities.
type TravelHandler struct {
	service *application.TravelService
	users   *application.UserService
}

// NewTravelHandler creates a new TravelHandler. users may be nil, in which
// case the user_id parameter of the along-route search is ignored.
func NewTravelHandler(service *application.TravelService, users *application.UserService) *TravelHandler {
	return &TravelHandler{service: service, users: users}
}

// RegisterRoutes registers all travel routes.
func (h *TravelHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api")
	{
		api.GET("/activities/nearby", h.NearbyActivities)
		api.GET("/activities-along-route", h.ActivitiesAlongRoute)
		api.GET("/address", h.Geocode)

		routes := api.Group("/routes")
		routes.GET("/directions", h.Directions)
		routes.GET("/nearby-activities", h.RouteWithNearbyActivities)
		routes.GET("/saved/:id", h.SavedRoute)
	}
}

// NearbyActivities handles GET /api/activities/nearby.
func (h *TravelHandler) NearbyActivities(c *gin.Context) {
	point, err := queryCoordinate(c, "lat", "lon")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	radius, err := optionalFloat(c, "radius", application.DefaultNearbyRadiusMeters)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.NearbyActivities(c.Request.Context(), point, radius)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Directions handles GET /api/routes/directions.
func (h *TravelHandler) Directions(c *gin.Context) {
	start, end, err := queryEndpoints(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Directions(c.Request.Context(), start, end, c.Query("mode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RouteWithNearbyActivities handles GET /api/routes/nearby-activities.
func (h *TravelHandler) RouteWithNearbyActivities(c *gin.Context) {
	start, end, err := queryEndpoints(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	radius, err := optionalFloat(c, "radius", application.DefaultNearbyRadiusMeters)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RouteWithNearbyActivities(c.Request.Context(), start, end, radius, c.Query("mode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ActivitiesAlongRoute handles GET /api/activities-along-route.
// When user_id is given, the user's stored preferences fill the parameters
// missing from the query before the defaults apply.
//
// Activities use the same shape as /api/activities/nearby: category is the
// first provider tag and the full tag list is returned as types.
func (h *TravelHandler) ActivitiesAlongRoute(c *gin.Context) {
	start, end, err := queryEndpoints(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	q := application.AlongRouteQuery{Start: start, End: end}
	if raw := c.Query("activity_type"); raw != "" {
		category, err := activity.ParseCategory(raw)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		q.ActivityType = category
	}
	if q.RadiusMeters, err = optionalFloat(c, "radius", 0); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.SamplingDistanceKm, err = optionalFloat(c, "sampling_distance", 0); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("user_id"); raw != "" && h.users != nil {
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid user ID")
			return
		}
		if err := h.users.ApplyPreferences(c.Request.Context(), userID, &q); err != nil {
			response.Error(c, err)
			return
		}
	}

	if q.ActivityType == "" {
		response.BadRequest(c, "missing query parameter: activity_type")
		return
	}
	if q.RadiusMeters == 0 {
		q.RadiusMeters = application.DefaultAlongRouteRadiusMeters
	}
	if q.SamplingDistanceKm == 0 {
		q.SamplingDistanceKm = application.DefaultSamplingDistanceKm
	}

	result, err := h.service.ActivitiesAlongRoute(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Geocode handles GET /api/address.
func (h *TravelHandler) Geocode(c *gin.Context) {
	result, err := h.service.Geocode(c.Request.Context(), c.Query("address"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SavedRoute handles GET /api/routes/saved/:id.
func (h *TravelHandler) SavedRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	result, err := h.service.SavedRoute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
