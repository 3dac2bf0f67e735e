package v1

import (
	"net/http"
	"time"

	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterSettingsRoutes registers the routes for the instance settings
// with the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", UpdateSettings)
}

type SettingsEditable struct {
	// WeekStartDay is the weekday weekly schedules anchor to,
	// 0 = Sunday through 6 = Saturday.
	WeekStartDay *time.Weekday `json:"weekStartDay" example:"1"`
}

type SettingsResponse struct {
	Data  *models.Settings `json:"data"`
	Error *string          `json:"error"`
}

func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

func GetSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		c.JSON(status(err), SettingsResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}

// UpdateSettings changes the instance settings. A changed week start
// takes effect on the next schedule recomputation.
func UpdateSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		c.JSON(status(err), SettingsResponse{Error: strPtr(err.Error())})
		return
	}

	var editable SettingsEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), SettingsResponse{Error: strPtr(err.Error())})
		return
	}

	if editable.WeekStartDay != nil {
		settings.WeekStartDay = *editable.WeekStartDay
	}

	if err := models.DB.Save(&settings).Error; err != nil {
		c.JSON(status(err), SettingsResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, SettingsResponse{Data: &settings})
}
