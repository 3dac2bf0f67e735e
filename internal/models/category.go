package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups transactions for budgeting. Transactions, budgets and
// recurring rules reference categories weakly: a deleted category leaves
// them uncategorized, it never cascades.
type Category struct {
	DefaultModel
	Name  string `gorm:"uniqueIndex"`
	Note  string
	Icon  string // Opaque display hint, not interpreted by the backend
	Color string // Opaque display hint, not interpreted by the backend
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}
