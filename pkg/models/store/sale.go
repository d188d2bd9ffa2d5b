package store

import "time"

// SaleRecord mirrors one row of the sales table as scanned from the store.
type SaleRecord struct {
	ID          int64
	Date        time.Time
	Product     string
	Category    string
	Quantity    int64
	UnitPrice   float64
	TotalAmount float64
}

// SaleRange narrows extraction to [From, To]. Nil bounds mean unbounded.
type SaleRange struct {
	From *time.Time
	To   *time.Time
}
