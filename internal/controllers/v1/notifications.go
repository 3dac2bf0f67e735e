package v1

import (
	"net/http"

	"github.com/coinkeep/backend/internal/engine"
	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes registers the routes for notification
// decisions with the RouterGroup that is passed.
func RegisterNotificationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetNotifications)
}

type NotificationListResponse struct {
	Data  []engine.NotificationDecision `json:"data"`
	Error *string                       `json:"error"`
}

// GetNotifications recomputes the derived state and returns the current
// notification decisions. Decision IDs are stable, re-reading does not
// create new ones; the caller deduplicates by ID and handles delivery.
func GetNotifications(c *gin.Context) {
	decisions, err := recompute(models.DB)
	if err != nil {
		c.JSON(status(err), NotificationListResponse{Error: strPtr(err.Error())})
		return
	}

	if decisions == nil {
		decisions = []engine.NotificationDecision{}
	}

	c.JSON(http.StatusOK, NotificationListResponse{Data: decisions})
}
