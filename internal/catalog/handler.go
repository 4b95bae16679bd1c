package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitable-backend/internal/shared/server/respond"
	"fitable-backend/internal/sizing"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/brands", h.list)
	rg.GET("/brands/:id/chart", h.chart)
}

func (h *Handler) list(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	brands, err := h.Svc.ListBrands(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list brands", nil)
		return
	}
	respond.Items(c, brands)
}

func (h *Handler) chart(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid brand id", nil)
		return
	}
	category := sizing.Category(c.Query("category"))
	if category != "" && category != sizing.CategoryTop && category != sizing.CategoryBottom {
		respond.Error(c, http.StatusBadRequest, "validation_error", "category must be top or bottom", []map[string]string{
			{"field": "category", "issue": "invalid"},
		})
		return
	}
	brand, rows, err := h.Svc.Chart(c.Request.Context(), id, category)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "brand not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load size chart", nil)
		return
	}
	if rows == nil {
		rows = []sizing.SizeChartEntry{}
	}
	respond.OK(c, gin.H{"brand": brand, "rows": rows})
}
