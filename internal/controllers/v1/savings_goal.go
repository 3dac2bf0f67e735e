package v1

import (
	"net/http"

	"github.com/coinkeep/backend/internal/engine"
	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterSavingsGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterSavingsGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSavingsGoalList)
		r.GET("", GetSavingsGoals)
		r.POST("", CreateSavingsGoal)
	}
	{
		r.OPTIONS("/:id", OptionsSavingsGoalDetail)
		r.GET("/:id", GetSavingsGoal)
		r.PATCH("/:id", UpdateSavingsGoal)
		r.DELETE("/:id", DeleteSavingsGoal)
	}
	{
		r.OPTIONS("/:id/evaluation", httputil.OptionsGet)
		r.GET("/:id/evaluation", GetSavingsGoalEvaluation)
	}
}

type SavingsGoalEditable struct {
	Title      string          `json:"title" example:"Emergency fund"`
	Note       string          `json:"note" example:"Three months of expenses"`
	Amount     decimal.Decimal `json:"amount" example:"5000"`
	StartDate  *types.Date     `json:"startDate"`
	TargetDate types.Date      `json:"targetDate" example:"2026-12-31"`
	Icon       string          `json:"icon" example:"piggy-bank"`
	Color      string          `json:"color" example:"#B8860B"`
}

func (editable SavingsGoalEditable) model() models.SavingsGoal {
	return models.SavingsGoal{
		Title:      editable.Title,
		Note:       editable.Note,
		Amount:     editable.Amount,
		StartDate:  editable.StartDate,
		TargetDate: editable.TargetDate,
		Icon:       editable.Icon,
		Color:      editable.Color,
	}
}

type SavingsGoalResponse struct {
	Data  *models.SavingsGoal `json:"data"`
	Error *string             `json:"error"`
	// StaleNotificationIDs lists notification IDs that a target date
	// change invalidated. The notifier drops any pending deliveries for
	// them.
	StaleNotificationIDs []string `json:"staleNotificationIds,omitempty"`
}

type SavingsGoalListResponse struct {
	Data       []models.SavingsGoal `json:"data"`
	Error      *string              `json:"error"`
	Pagination *Pagination          `json:"pagination"`
}

type SavingsGoalQueryFilter struct {
	Completed *bool `form:"completed"`
	Offset    uint  `form:"offset"`
	Limit     *int  `form:"limit"`
}

// SavingsGoalEvaluationResponse wraps the computed state of a goal.
type SavingsGoalEvaluationResponse struct {
	Data  *engine.GoalEvaluation `json:"data"`
	Error *string                `json:"error"`
}

func OptionsSavingsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsSavingsGoalDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.SavingsGoal{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func CreateSavingsGoal(c *gin.Context) {
	var editable SavingsGoalEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	goal := editable.model()
	if err := models.DB.Create(&goal).Error; err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	recomputeAfterMutation()

	c.JSON(http.StatusCreated, SavingsGoalResponse{Data: &goal})
}

func GetSavingsGoals(c *gin.Context) {
	var filter SavingsGoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, SavingsGoalListResponse{Error: strPtr(err.Error())})
		return
	}

	q := models.DB.Order("target_date ASC")
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	limit := listLimit(filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var goals []models.SavingsGoal
	if err := q.Find(&goals).Error; err != nil {
		c.JSON(status(err), SavingsGoalListResponse{Error: strPtr(err.Error())})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		c.JSON(status(err), SavingsGoalListResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, SavingsGoalListResponse{
		Data: goals,
		Pagination: &Pagination{
			Count:  len(goals),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetSavingsGoal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	var goal models.SavingsGoal
	if err := models.DB.First(&goal, id).Error; err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &goal})
}

// GetSavingsGoalEvaluation derives the goal's current amount, completion
// and remaining days from the transaction history.
func GetSavingsGoalEvaluation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), SavingsGoalEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	var goal models.SavingsGoal
	if err := models.DB.First(&goal, id).Error; err != nil {
		c.JSON(status(err), SavingsGoalEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	cfg, err := engineConfig(models.DB)
	if err != nil {
		c.JSON(status(err), SavingsGoalEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		c.JSON(status(err), SavingsGoalEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	evaluation := engine.EvaluateGoal(goal, transactions, cfg)
	c.JSON(http.StatusOK, SavingsGoalEvaluationResponse{Data: &evaluation})
}

func UpdateSavingsGoal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	var goal models.SavingsGoal
	if err := models.DB.First(&goal, id).Error; err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, SavingsGoalEditable{})
	if err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	var editable SavingsGoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	previousTargetDate := goal.TargetDate

	if err := models.DB.Model(&goal).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), SavingsGoalResponse{Error: strPtr(err.Error())})
		return
	}

	// Moving the target date re-keys the goal's reminders. The old keys
	// are reported so the notifier can drop anything still pending.
	var staleIDs []string
	if !goal.TargetDate.Equal(previousTargetDate) {
		staleIDs = engine.StaleGoalDecisionIDs(goal, previousTargetDate)
	}

	recomputeAfterMutation()

	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &goal, StaleNotificationIDs: staleIDs})
}

func DeleteSavingsGoal(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goal models.SavingsGoal
	if err := models.DB.First(&goal, id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
