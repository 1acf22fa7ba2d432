package trip

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleetgrid/database/query"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/server"
)

// Handler serves the /trips endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a trip handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the trip endpoints behind the given guard.
func (h *Handler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	grp := r.Group("/trips", guard)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
}

type tripRequest struct {
	BaseID         uuid.UUID  `json:"baseId" binding:"required"`
	DriverID       uuid.UUID  `json:"driverId" binding:"required"`
	VehiclePlate   string     `json:"vehiclePlate" binding:"required,plate"`
	Origin         string     `json:"origin" binding:"required"`
	Destination    string     `json:"destination" binding:"required"`
	DepartureAt    time.Time  `json:"departureAt" binding:"required"`
	ArrivalAt      *time.Time `json:"arrivalAt"`
	PassengerCount int        `json:"passengerCount"`
	Notes          string     `json:"notes"`
}

func (r tripRequest) toModel() *Trip {
	return &Trip{
		BaseID:         r.BaseID,
		DriverID:       r.DriverID,
		VehiclePlate:   r.VehiclePlate,
		Origin:         r.Origin,
		Destination:    r.Destination,
		DepartureAt:    r.DepartureAt,
		ArrivalAt:      r.ArrivalAt,
		PassengerCount: r.PassengerCount,
		Notes:          r.Notes,
	}
}

func (h *Handler) list(c *gin.Context) {
	params, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	result, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(200, result)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, t)
}

func (h *Handler) create(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	t := req.toModel()
	if err := h.svc.Create(c.Request.Context(), t); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, t)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, t)
}

func (h *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
