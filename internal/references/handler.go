package references

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitable-backend/internal/shared/server/middleware"
	"fitable-backend/internal/shared/server/respond"
	"fitable-backend/internal/shared/validation"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/references", h.create)
	rg.GET("/references", h.list)
	rg.DELETE("/references/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	ref, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Details())
		case errors.Is(err, ErrLimitReached):
			respond.Error(c, http.StatusConflict, "limit_reached", "too many reference garments; delete one first", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save reference", nil)
		}
		return
	}
	respond.Created(c, ref)
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	refs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list references", nil)
		return
	}
	respond.Items(c, refs)
}

func (h *Handler) delete(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "reference not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete reference", nil)
		return
	}
	respond.NoContent(c)
}
