package servicing

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleetgrid/database/query"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/server"
)

// Handler serves the /servicing endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the servicing endpoints behind the given guard.
func (h *Handler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	grp := r.Group("/servicing", guard)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
}

type jobRequest struct {
	VehiclePlate string     `json:"vehiclePlate" binding:"required,plate"`
	Type         string     `json:"type" binding:"required"`
	Workshop     string     `json:"workshop"`
	CostCents    int64      `json:"costCents" binding:"min=0"`
	Status       string     `json:"status"`
	ScheduledAt  time.Time  `json:"scheduledAt" binding:"required"`
	CompletedAt  *time.Time `json:"completedAt"`
}

func (r jobRequest) toModel() *Job {
	return &Job{
		VehiclePlate: r.VehiclePlate,
		Type:         r.Type,
		Workshop:     r.Workshop,
		CostCents:    r.CostCents,
		Status:       r.Status,
		ScheduledAt:  r.ScheduledAt,
		CompletedAt:  r.CompletedAt,
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
	j, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, j)
}

func (h *Handler) create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	j := req.toModel()
	if err := h.svc.Create(c.Request.Context(), j); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, j)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	j, err := h.svc.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, j)
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
