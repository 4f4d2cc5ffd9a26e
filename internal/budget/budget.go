package budget

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// Category is a spending bucket of one group. Name is unique within the group.
type Category struct {
	ID          int64
	GroupID     int64
	Name        string
	BudgetLimit *decimal.Decimal
}

// Goal is a savings target of one group.
type Goal struct {
	ID           int64
	GroupID      int64
	Name         string
	TargetAmount decimal.Decimal
	CreatedAt    time.Time
}
