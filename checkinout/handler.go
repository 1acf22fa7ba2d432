package checkinout

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleetgrid/database/query"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/server"
)

// Handler serves the /check-in-out endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the check event endpoints behind the given guard.
func (h *Handler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	grp := r.Group("/check-in-out", guard)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
}

type eventRequest struct {
	VehiclePlate string    `json:"vehiclePlate" binding:"required,plate"`
	UserID       uuid.UUID `json:"userId" binding:"required"`
	Direction    string    `json:"direction" binding:"required,oneof=in out"`
	OdometerKm   int       `json:"odometerKm"`
	FuelLevel    int       `json:"fuelLevel" binding:"min=0,max=100"`
	Remarks      string    `json:"remarks"`
	OccurredAt   time.Time `json:"occurredAt" binding:"required"`
}

func (r eventRequest) toModel() *Event {
	return &Event{
		VehiclePlate: r.VehiclePlate,
		UserID:       r.UserID,
		Direction:    r.Direction,
		OdometerKm:   r.OdometerKm,
		FuelLevel:    r.FuelLevel,
		Remarks:      r.Remarks,
		OccurredAt:   r.OccurredAt,
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
	e, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, e)
}

func (h *Handler) create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	e := req.toModel()
	if err := h.svc.Create(c.Request.Context(), e); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, e)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, e)
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
