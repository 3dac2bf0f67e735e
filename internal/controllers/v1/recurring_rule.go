package v1

import (
	"net/http"

	"github.com/coinkeep/backend/internal/engine"
	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RegisterRecurringRuleRoutes registers the routes for recurring rules
// with the RouterGroup that is passed.
func RegisterRecurringRuleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRecurringRuleList)
		r.GET("", GetRecurringRules)
		r.POST("", CreateRecurringRule)
	}
	{
		r.OPTIONS("/materialize", OptionsMaterialize)
		r.POST("/materialize", MaterializeRecurringRules)
	}
	{
		r.OPTIONS("/:id", OptionsRecurringRuleDetail)
		r.GET("/:id", GetRecurringRule)
		r.PATCH("/:id", UpdateRecurringRule)
		r.DELETE("/:id", DeleteRecurringRule)
	}
}

type RecurringRuleEditable struct {
	Title      string          `json:"title" example:"Rent"`
	Note       string          `json:"note" example:"Transferred on the first"`
	Amount     decimal.Decimal `json:"amount" example:"850"`
	Direction  types.Direction `json:"direction" example:"expense"`
	CategoryID *uuid.UUID      `json:"categoryId"`
	Frequency  types.Frequency `json:"frequency" example:"monthly"`
	StartDate  types.Date      `json:"startDate" example:"2026-01-01"`
	EndDate    *types.Date     `json:"endDate"`
	Active     *bool           `json:"active" example:"true"`
}

func (editable RecurringRuleEditable) model() models.RecurringRule {
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.RecurringRule{
		Title:      editable.Title,
		Note:       editable.Note,
		Amount:     editable.Amount,
		Direction:  editable.Direction,
		CategoryID: editable.CategoryID,
		Frequency:  editable.Frequency,
		StartDate:  editable.StartDate,
		EndDate:    editable.EndDate,
		Active:     active,
	}
}

type RecurringRuleResponse struct {
	Data  *models.RecurringRule `json:"data"`
	Error *string               `json:"error"`
}

type RecurringRuleListResponse struct {
	Data       []models.RecurringRule `json:"data"`
	Error      *string                `json:"error"`
	Pagination *Pagination            `json:"pagination"`
}

type RecurringRuleQueryFilter struct {
	Active *bool `form:"active"`
	Offset uint  `form:"offset"`
	Limit  *int  `form:"limit"`
}

// MaterializeResponse reports what a materialization run produced.
type MaterializeResponse struct {
	Data  *MaterializeResult `json:"data"`
	Error *string            `json:"error"`
}

type MaterializeResult struct {
	Transactions []models.Transaction          `json:"transactions"` // The transactions created by this run
	Decisions    []engine.NotificationDecision `json:"decisions"`    // Notification decisions from the recompute that followed
}

func OptionsRecurringRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsMaterialize(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsRecurringRuleDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.RecurringRule{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func CreateRecurringRule(c *gin.Context) {
	var editable RecurringRuleEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	rule := editable.model()
	if err := scheduleRule(&rule); err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	if err := models.DB.Create(&rule).Error; err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusCreated, RecurringRuleResponse{Data: &rule})
}

// scheduleRule resolves the rule's next due date. A rule whose schedule
// is already exhausted is stored deactivated instead of rejected.
func scheduleRule(rule *models.RecurringRule) error {
	cfg, err := engineConfig(models.DB)
	if err != nil {
		return err
	}

	next, ok := engine.ResolveNextDue(*rule, cfg)
	if !ok {
		rule.NextDue = nil
		rule.Active = false
		return nil
	}

	rule.NextDue = &next
	return nil
}

func GetRecurringRules(c *gin.Context) {
	var filter RecurringRuleQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, RecurringRuleListResponse{Error: strPtr(err.Error())})
		return
	}

	q := models.DB.Order("next_due ASC, title ASC")
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}

	limit := listLimit(filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var rules []models.RecurringRule
	if err := q.Find(&rules).Error; err != nil {
		c.JSON(status(err), RecurringRuleListResponse{Error: strPtr(err.Error())})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		c.JSON(status(err), RecurringRuleListResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, RecurringRuleListResponse{
		Data: rules,
		Pagination: &Pagination{
			Count:  len(rules),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetRecurringRule(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	var rule models.RecurringRule
	if err := models.DB.First(&rule, id).Error; err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, RecurringRuleResponse{Data: &rule})
}

func UpdateRecurringRule(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	var rule models.RecurringRule
	if err := models.DB.First(&rule, id).Error; err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, RecurringRuleEditable{})
	if err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	var editable RecurringRuleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	previousFrequency := rule.Frequency
	previousStartDate := rule.StartDate

	if err := models.DB.Model(&rule).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
		return
	}

	// A schedule change invalidates the stored due date, so it is
	// resolved again from the new frequency and dates.
	if rule.Frequency != previousFrequency || !rule.StartDate.Equal(previousStartDate) {
		rule.NextDue = nil

		if err := scheduleRule(&rule); err != nil {
			c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
			return
		}

		err := models.DB.Model(&rule).Updates(map[string]interface{}{
			"next_due": rule.NextDue,
			"active":   rule.Active,
		}).Error
		if err != nil {
			c.JSON(status(err), RecurringRuleResponse{Error: strPtr(err.Error())})
			return
		}
	}

	c.JSON(http.StatusOK, RecurringRuleResponse{Data: &rule})
}

// DeleteRecurringRule deletes the rule. Transactions that were
// materialized from it stay untouched.
func DeleteRecurringRule(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var rule models.RecurringRule
	if err := models.DB.First(&rule, id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&rule).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// MaterializeRecurringRules turns all due occurrences of active rules
// into transactions and advances the rules' schedules. Calling it when
// nothing is due is a no-op.
func MaterializeRecurringRules(c *gin.Context) {
	cfg, err := engineConfig(models.DB)
	if err != nil {
		c.JSON(status(err), MaterializeResponse{Error: strPtr(err.Error())})
		return
	}

	var rules []models.RecurringRule
	if err := models.DB.Where("active = ?", true).Find(&rules).Error; err != nil {
		c.JSON(status(err), MaterializeResponse{Error: strPtr(err.Error())})
		return
	}

	drafts, deltas := engine.MaterializeDue(rules, cfg)

	transactions := make([]models.Transaction, 0, len(drafts))
	for _, draft := range drafts {
		transaction := draft.Transaction()
		if err := models.DB.Create(&transaction).Error; err != nil {
			c.JSON(status(err), MaterializeResponse{Error: strPtr(err.Error())})
			return
		}
		transactions = append(transactions, transaction)
	}

	ruleByID := make(map[uuid.UUID]*models.RecurringRule, len(rules))
	for i := range rules {
		ruleByID[rules[i].ID] = &rules[i]
	}

	for _, delta := range deltas {
		err := models.DB.Model(ruleByID[delta.RuleID]).Updates(map[string]interface{}{
			"next_due": delta.NextDue,
			"active":   delta.Active,
		}).Error
		if err != nil {
			c.JSON(status(err), MaterializeResponse{Error: strPtr(err.Error())})
			return
		}
	}

	decisions := []engine.NotificationDecision{}
	if len(transactions) > 0 {
		log.Info().Int("transactions", len(transactions)).Msg("materialized due recurring transactions")

		decisions, err = recompute(models.DB)
		if err != nil {
			c.JSON(status(err), MaterializeResponse{Error: strPtr(err.Error())})
			return
		}
	}

	c.JSON(http.StatusOK, MaterializeResponse{Data: &MaterializeResult{
		Transactions: transactions,
		Decisions:    decisions,
	}})
}
