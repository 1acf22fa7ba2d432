package quiz

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fleetgrid/fleetgrid/database/query"
	apperrors "github.com/fleetgrid/fleetgrid/errors"
	"github.com/fleetgrid/fleetgrid/server"
)

// Handler serves the /quizzes endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the quiz endpoints behind the given guard.
func (h *Handler) RegisterRoutes(r gin.IRouter, guard gin.HandlerFunc) {
	grp := r.Group("/quizzes", guard)
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.POST("", h.create)
	grp.PUT("/:id", h.update)
	grp.DELETE("/:id", h.delete)
}

type questionRequest struct {
	Text         string   `json:"text" binding:"required"`
	Choices      []string `json:"choices" binding:"required,min=2"`
	CorrectIndex int      `json:"correctIndex" binding:"min=0"`
}

type quizRequest struct {
	Title     string            `json:"title" binding:"required"`
	Active    bool              `json:"active"`
	Questions []questionRequest `json:"questions" binding:"dive"`
}

func (r quizRequest) toModel() *Quiz {
	q := &Quiz{
		Title:     r.Title,
		Active:    r.Active,
		Questions: make([]Question, 0, len(r.Questions)),
	}
	for _, qr := range r.Questions {
		q.Questions = append(q.Questions, Question{
			Text:         qr.Text,
			Choices:      qr.Choices,
			CorrectIndex: qr.CorrectIndex,
		})
	}
	return q
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
	q, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, q)
}

func (h *Handler) create(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	q := req.toModel()
	if err := h.svc.Create(c.Request.Context(), q); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, q)
}

func (h *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return
	}
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}
	q, err := h.svc.Update(c.Request.Context(), id, req.toModel())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, q)
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
