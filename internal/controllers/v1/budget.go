package v1

import (
	"net/http"

	"github.com/coinkeep/backend/internal/engine"
	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budgets with the
// RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
	{
		r.OPTIONS("/:id/evaluation", httputil.OptionsGet)
		r.GET("/:id/evaluation", GetBudgetEvaluation)
	}
}

type BudgetEditable struct {
	Name            string               `json:"name" example:"Groceries"`
	Note            string               `json:"note" example:"Cap for the fridge"`
	CategoryID      *uuid.UUID           `json:"categoryId"`
	Amount          decimal.Decimal      `json:"amount" example:"350"`
	PeriodKind      types.PeriodKind     `json:"periodKind" example:"monthly"`
	PeriodStart     types.Date           `json:"periodStart" example:"2026-02-01"`
	Active          *bool                `json:"active" example:"true"`
	RolloverEnabled bool                 `json:"rolloverEnabled" example:"false"`
	Thresholds      models.ThresholdList `json:"thresholds" example:"80,90,100"`
}

func (editable BudgetEditable) model() models.Budget {
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.Budget{
		Name:            editable.Name,
		Note:            editable.Note,
		CategoryID:      editable.CategoryID,
		Amount:          editable.Amount,
		PeriodKind:      editable.PeriodKind,
		PeriodStart:     editable.PeriodStart,
		Active:          active,
		RolloverEnabled: editable.RolloverEnabled,
		Thresholds:      editable.Thresholds,
	}
}

type BudgetResponse struct {
	Data  *models.Budget `json:"data"`
	Error *string        `json:"error"`
}

type BudgetListResponse struct {
	Data       []models.Budget `json:"data"`
	Error      *string         `json:"error"`
	Pagination *Pagination     `json:"pagination"`
}

type BudgetQueryFilter struct {
	Active *bool `form:"active"`
	Offset uint  `form:"offset"`
	Limit  *int  `form:"limit"`
}

// BudgetEvaluationResponse wraps the computed state of a budget for its
// current period.
type BudgetEvaluationResponse struct {
	Data  *engine.BudgetEvaluation `json:"data"`
	Error *string                  `json:"error"`
}

func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsBudgetDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Budget{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	budget := editable.model()

	// An unset period start anchors the budget to the period that
	// contains today.
	if budget.PeriodStart.IsZero() {
		cfg, err := engineConfig(models.DB)
		if err != nil {
			c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
			return
		}
		budget.PeriodStart = types.PeriodStart(budget.PeriodKind, cfg.Now())
	}

	if err := models.DB.Create(&budget).Error; err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &budget})
}

func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, BudgetListResponse{Error: strPtr(err.Error())})
		return
	}

	q := models.DB.Order("name ASC")
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}

	limit := listLimit(filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var budgets []models.Budget
	if err := q.Find(&budgets).Error; err != nil {
		c.JSON(status(err), BudgetListResponse{Error: strPtr(err.Error())})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		c.JSON(status(err), BudgetListResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: budgets,
		Pagination: &Pagination{
			Count:  len(budgets),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetBudget(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, id).Error; err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

// GetBudgetEvaluation computes the budget's spent amount, usage ratio and
// warning band for its current period. The evaluation is derived on read
// and never stored, only rollovers are persisted by the recompute runs.
func GetBudgetEvaluation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), BudgetEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, id).Error; err != nil {
		c.JSON(status(err), BudgetEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	cfg, err := engineConfig(models.DB)
	if err != nil {
		c.JSON(status(err), BudgetEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	var transactions []models.Transaction
	if err := models.DB.Find(&transactions).Error; err != nil {
		c.JSON(status(err), BudgetEvaluationResponse{Error: strPtr(err.Error())})
		return
	}

	evaluation := engine.EvaluateBudgetPeriod(budget, transactions, cfg)
	c.JSON(http.StatusOK, BudgetEvaluationResponse{Data: &evaluation})
}

func UpdateBudget(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, id).Error; err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	if err := models.DB.Model(&budget).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), BudgetResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}

func DeleteBudget(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
