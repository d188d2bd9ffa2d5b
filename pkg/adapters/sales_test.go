package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/sales-reporter/pkg/models/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapStoreSaleToDomain_RecomputesLineTotal(t *testing.T) {
	record := store.SaleRecord{
		ID:          7,
		Date:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Product:     "Headphones",
		Category:    "Electronics",
		Quantity:    3,
		UnitPrice:   79.99,
		TotalAmount: 239.96, // drifted in the store on purpose
	}

	sale := MapStoreSaleToDomain(record)

	assert.Equal(t, "Electronics", sale.Category)
	assert.True(t, sale.UnitPrice.Equal(decimal.NewFromFloat(79.99)))
	assert.True(t, sale.LineTotal.Equal(decimal.NewFromFloat(239.97)),
		"line total must come from quantity*price, got %s", sale.LineTotal)
	assert.Equal(t, "2026-01", sale.Month())
	assert.Equal(t, "Thursday", sale.Weekday())
}
