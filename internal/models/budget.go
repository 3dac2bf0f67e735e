package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/coinkeep/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// DefaultThresholds are the warning thresholds used when a budget does not
// configure its own.
var DefaultThresholds = ThresholdList{80, 90, 100}

// ThresholdList is an ascending list of usage percentages at which a
// budget's warning band changes.
type ThresholdList []float64

// Scan reads the value from the database.
func (t *ThresholdList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported type %T for ThresholdList", value)
	}

	return json.Unmarshal([]byte(raw), t)
}

// Value returns the value for the SQL driver to write to the database.
func (t ThresholdList) Value() (driver.Value, error) {
	raw, err := json.Marshal(t)
	return string(raw), err
}

// GormDataType defines the data type used by gorm for the type.
func (ThresholdList) GormDataType() string {
	return "text"
}

// Budget caps spending for one category, or for all categories when
// CategoryID is nil.
//
// PeriodStart and Amount are owned by the period engine: the period start
// jumps forward when the current period expires, and the amount is raised
// by the unspent balance when rollover is enabled.
type Budget struct {
	DefaultModel
	Name            string
	Note            string
	CategoryID      *uuid.UUID
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The spending target for one period
	PeriodKind      types.PeriodKind
	PeriodStart     types.Date
	Active          bool
	RolloverEnabled bool
	Thresholds      ThresholdList
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	if len(b.Thresholds) == 0 {
		b.Thresholds = slices.Clone(DefaultThresholds)
	}

	b.Amount = SanitizeAmount(b.Amount)

	return nil
}

// AfterSave validates the stored row. On a partial update the receiver
// holds the merged result, so the checks also cover updates that only
// touch some of the columns. An error rolls the write back.
func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !b.PeriodKind.Valid() {
		return ErrPeriodKindInvalid
	}

	if len(b.Thresholds) == 0 {
		return ErrThresholdsEmpty
	}

	if !slices.IsSorted(b.Thresholds) {
		return ErrThresholdsNotAscending
	}

	if b.Amount.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}
