package v1

import (
	"net/http"
	"time"

	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/coinkeep/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

type TransactionEditable struct {
	Title      string          `json:"title" example:"Weekly groceries"`
	Note       string          `json:"note" example:"Farmers market"`
	Amount     decimal.Decimal `json:"amount" example:"27.12"`
	Date       time.Time       `json:"date" example:"2026-02-10T00:00:00Z"`
	Direction  types.Direction `json:"direction" example:"expense"`
	CategoryID *uuid.UUID      `json:"categoryId" example:"2cb0b8ae-a373-4930-b5e9-f6a46d95f1a4"`
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Title:      editable.Title,
		Note:       editable.Note,
		Amount:     editable.Amount,
		Date:       editable.Date,
		Direction:  editable.Direction,
		CategoryID: editable.CategoryID,
	}
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error"`
}

type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`
	Error      *string              `json:"error"`
	Pagination *Pagination          `json:"pagination"`
}

type TransactionQueryFilter struct {
	Direction       string `form:"direction"`
	CategoryID      string `form:"category"`
	RecurringRuleID string `form:"recurringRule"`
	FromDate        string `form:"fromDate"`
	UntilDate       string `form:"untilDate"`
	Offset          uint   `form:"offset"`
	Limit           *int   `form:"limit"`
}

func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsTransactionDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Transaction{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	transaction := editable.model()
	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	recomputeAfterMutation()

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: strPtr(err.Error())})
		return
	}

	q, err := transactionQuery(filter)
	if err != nil {
		c.JSON(status(err), TransactionListResponse{Error: strPtr(err.Error())})
		return
	}

	limit := listLimit(filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		c.JSON(status(err), TransactionListResponse{Error: strPtr(err.Error())})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		c.JSON(status(err), TransactionListResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			Count:  len(transactions),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// transactionQuery builds the gorm query for the filter.
func transactionQuery(filter TransactionQueryFilter) (q *gorm.DB, err error) {
	q = models.DB.Order("date DESC")

	if filter.Direction != "" {
		direction := types.Direction(filter.Direction)
		if !direction.Valid() {
			return nil, models.ErrDirectionInvalid
		}
		q = q.Where("direction = ?", direction)
	}

	if filter.CategoryID != "" {
		id, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, errInvalidUUID
		}
		q = q.Where("category_id = ?", id)
	}

	if filter.RecurringRuleID != "" {
		id, err := uuid.Parse(filter.RecurringRuleID)
		if err != nil {
			return nil, errInvalidUUID
		}
		q = q.Where("recurring_rule_id = ?", id)
	}

	if filter.FromDate != "" {
		from, err := types.ParseDate(filter.FromDate)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ?", from.Time())
	}

	if filter.UntilDate != "" {
		until, err := types.ParseDate(filter.UntilDate)
		if err != nil {
			return nil, err
		}
		q = q.Where("date < ?", until.AddDays(1).Time())
	}

	return q, nil
}

func GetTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, id).Error; err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

func UpdateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, id).Error; err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	if err := models.DB.Model(&transaction).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), TransactionResponse{Error: strPtr(err.Error())})
		return
	}

	recomputeAfterMutation()

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

func DeleteTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	recomputeAfterMutation()

	c.Status(http.StatusNoContent)
}

// recomputeAfterMutation refreshes the derived state after a data change.
// The mutation itself has already been committed, so a failing recompute
// is logged and the next mutation or notification poll retries it.
func recomputeAfterMutation() {
	if _, err := recompute(models.DB); err != nil {
		log.Error().Err(err).Msg("recompute after mutation failed")
	}
}
