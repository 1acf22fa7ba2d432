package base

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/server"
)

// Handler serves the /bases endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a base handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the base endpoints behind the given guard.
func (h *Handler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	grp := r.Group("/bases", guard)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
}

type baseRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

func (h *Handler) list(c *gin.Context) {
	bases, err := h.svc.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, bases)
}

func (h *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, b)
}

func (h *Handler) create(c *gin.Context) {
	var req baseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	b := &Base{Name: req.Name, Address: req.Address}
	if err := h.svc.Create(c.Request.Context(), b); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, b)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	var req baseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	b, err := h.svc.Update(c.Request.Context(), id, &Base{Name: req.Name, Address: req.Address})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, b)
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
