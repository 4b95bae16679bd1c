package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitable-backend/internal/shared/server/middleware"
	"fitable-backend/internal/shared/server/respond"
	"fitable-backend/internal/shared/validation"
	"fitable-backend/internal/sizing"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.recommend)
}

func (h *Handler) recommend(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	out, err := h.Svc.Recommend(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), verr.Details())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute recommendation", nil)
		return
	}

	res := out.Recommendation
	c.Set(middleware.RecommendedSizeKey, res.RecommendedSize)
	status := http.StatusOK
	if res.Failure != nil {
		c.Set(middleware.FailureKindKey, string(res.Failure.Kind))
		status = statusFor(res.Failure.Kind)
	}
	respond.JSON(c, status, out)
}

// statusFor maps engine failures onto HTTP. Most failures are ordinary
// answers about the product and stay 200.
func statusFor(kind sizing.FailureKind) int {
	switch kind {
	case sizing.KindMeasurementsNotFound:
		return http.StatusNotFound
	case sizing.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
