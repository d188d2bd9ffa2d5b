package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one transactional row from the store with exact money values.
// LineTotal is recomputed as Quantity * UnitPrice when the row is mapped in,
// so every aggregate downstream reconciles against the detail rows.
type Sale struct {
	ID        int64
	Date      time.Time
	Product   string
	Category  string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Month returns the sale month in YYYY-MM form.
func (s Sale) Month() string {
	return s.Date.Format("2006-01")
}

// Weekday returns the sale day name, e.g. "Monday".
func (s Sale) Weekday() string {
	return s.Date.Weekday().String()
}

// SummaryRow is the category-level aggregation of Sales.
type SummaryRow struct {
	Category string
	Quantity int64
	Revenue  decimal.Decimal
}
