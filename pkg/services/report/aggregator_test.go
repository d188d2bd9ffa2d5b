package report

import (
	"testing"
	"time"

	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(id int64, category string, qty int64, price float64) domain.Sale {
	p := decimal.NewFromFloat(price)
	return domain.Sale{
		ID:        id,
		Date:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Product:   category + " product",
		Category:  category,
		Quantity:  qty,
		UnitPrice: p,
		LineTotal: p.Mul(decimal.NewFromInt(qty)),
	}
}

func TestSummarize_GroupsAndOrdersByRevenueDesc(t *testing.T) {
	// Given
	sales := []domain.Sale{
		sale(1, "A", 2, 10),
		sale(2, "B", 1, 5),
		sale(3, "A", 1, 10),
	}

	// When
	summary := Summarize(sales)

	// Then
	require.Len(t, summary, 2)
	assert.Equal(t, "A", summary[0].Category)
	assert.EqualValues(t, 3, summary[0].Quantity)
	assert.True(t, summary[0].Revenue.Equal(decimal.NewFromInt(30)),
		"expected revenue 30, got %s", summary[0].Revenue)
	assert.Equal(t, "B", summary[1].Category)
	assert.EqualValues(t, 1, summary[1].Quantity)
	assert.True(t, summary[1].Revenue.Equal(decimal.NewFromInt(5)),
		"expected revenue 5, got %s", summary[1].Revenue)
}

func TestSummarize_EqualRevenue_OrdersByCategoryAsc(t *testing.T) {
	sales := []domain.Sale{
		sale(1, "Furniture", 2, 50),
		sale(2, "Appliances", 4, 25),
	}

	summary := Summarize(sales)

	require.Len(t, summary, 2)
	assert.Equal(t, "Appliances", summary[0].Category)
	assert.Equal(t, "Furniture", summary[1].Category)
}

func TestSummarize_EmptyInput_ReturnsEmptySummary(t *testing.T) {
	summary := Summarize(nil)

	assert.NotNil(t, summary)
	assert.Empty(t, summary)
}

func TestSummarize_ReconcilesAgainstDetailRows(t *testing.T) {
	// Cent-valued prices are where float accumulation would drift.
	sales := []domain.Sale{
		sale(1, "Electronics", 3, 899.99),
		sale(2, "Electronics", 1, 79.99),
		sale(3, "Furniture", 2, 249.99),
		sale(4, "Furniture", 5, 39.99),
		sale(5, "Electronics", 4, 29.99),
	}

	summary := Summarize(sales)

	summaryTotal := decimal.Zero
	for _, row := range summary {
		summaryTotal = summaryTotal.Add(row.Revenue)
	}
	assert.True(t, summaryTotal.Equal(TotalRevenue(sales)),
		"summary total %s != detail total %s", summaryTotal, TotalRevenue(sales))

	var qty int64
	for _, row := range summary {
		qty += row.Quantity
	}
	assert.Equal(t, TotalQuantity(sales), qty)
}

func TestDedupe_DropsExactDuplicates(t *testing.T) {
	s := sale(1, "A", 2, 10)
	sales := []domain.Sale{s, sale(2, "B", 1, 5), s}

	out := Dedupe(sales)

	require.Len(t, out, 2)
	assert.EqualValues(t, 1, out[0].ID)
	assert.EqualValues(t, 2, out[1].ID)
}

func TestDedupe_KeepsDistinctRowsWithSameCategory(t *testing.T) {
	sales := []domain.Sale{sale(1, "A", 2, 10), sale(2, "A", 2, 10)}

	out := Dedupe(sales)

	assert.Len(t, out, 2)
}
