package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testSales() []domain.Sale {
	mkSale := func(id int64, category string, qty int64, price float64) domain.Sale {
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
	return []domain.Sale{
		mkSale(1, "Electronics", 3, 299.99),
		mkSale(2, "Furniture", 1, 249.99),
	}
}

func testSummary() []domain.SummaryRow {
	return []domain.SummaryRow{
		{Category: "Electronics", Quantity: 3, Revenue: decimal.NewFromFloat(899.97)},
		{Category: "Furniture", Quantity: 1, Revenue: decimal.NewFromFloat(249.99)},
	}
}

func TestRenderer_Render_ProducesTwoSheetWorkbook(t *testing.T) {
	// Given
	r := NewRenderer()
	r.now = func() time.Time { return time.Date(2026, 1, 20, 8, 30, 0, 0, time.UTC) }
	path := filepath.Join(t.TempDir(), "sales_report_20260120_083000.xlsx")

	// When
	err := r.Render(context.Background(), testSummary(), testSales(), path)

	// Then
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Data"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "SALES REPORT SUMMARY", title)

	generated, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Generated on: 2026-01-20 08:30:00", generated)

	header, err := f.GetCellValue("Summary", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Category", header)

	first, err := f.GetCellValue("Summary", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", first)

	dataHeader, err := f.GetCellValue("Data", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Product", dataHeader)

	product, err := f.GetCellValue("Data", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Electronics product", product)

	weekday, err := f.GetCellValue("Data", "I2")
	require.NoError(t, err)
	assert.Equal(t, "Thursday", weekday)
}

func TestRenderer_Render_EmptySummary_StillProducesValidWorkbook(t *testing.T) {
	r := NewRenderer()
	path := filepath.Join(t.TempDir(), "sales_report_empty.xlsx")

	err := r.Render(context.Background(), nil, nil, path)

	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Data"}, f.GetSheetList())

	header, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Sale ID", header)
}

func TestRenderer_Render_UnwritableDir_FailsWithoutArtifact(t *testing.T) {
	r := NewRenderer()
	path := filepath.Join(t.TempDir(), "missing", "sales_report.xlsx")

	err := r.Render(context.Background(), testSummary(), testSales(), path)

	require.Error(t, err)
	assert.Equal(t, domain.ErrOutputWrite, domain.KindOf(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no artifact may exist at the canonical path")
}
