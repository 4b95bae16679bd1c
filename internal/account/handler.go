package account

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitable-backend/internal/shared/server/middleware"
	"fitable-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/account/claim-guest", h.claimGuest)
}

// claimGuest runs after sign-in: the client sends its bearer token plus the
// X-Guest-Id it used before, and the guest's profile, references and history
// move to the account.
func (h *Handler) claimGuest(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := strings.TrimSpace(middleware.UserIDFromContext(c))
	if middleware.IsGuest(c) || userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
	issue := ""
	if guestID == "" {
		issue = "required"
	} else if _, err := uuid.Parse(guestID); err != nil {
		issue = "invalid"
	}
	if issue != "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "a valid X-Guest-Id header is required", []map[string]string{
			{"field": "X-Guest-Id", "issue": issue},
		})
		return
	}

	result, err := h.Svc.ClaimGuest(c.Request.Context(), middleware.GuestUserID(guestID), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to claim guest data", nil)
		return
	}
	respond.OK(c, result)
}
