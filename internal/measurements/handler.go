package measurements

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
	rg.PUT("/measurements", h.update)
	rg.GET("/measurements", h.get)
}

func (h *Handler) update(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	m, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Details())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save measurements", nil)
		return
	}
	respond.OK(c, m)
}

func (h *Handler) get(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	m, err := h.Svc.Latest(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no measurements saved yet", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load measurements", nil)
		return
	}
	respond.OK(c, m)
}
