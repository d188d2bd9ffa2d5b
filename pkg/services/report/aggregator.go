package report

import (
	"sort"

	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// Summarize groups sales by category, summing quantity and per-row line
// totals. Revenue is accumulated with decimal arithmetic so the summary
// always reconciles exactly against the detail rows. Rows are ordered by
// revenue descending, ties broken by category name ascending. An empty
// input yields an empty summary.
func Summarize(sales []domain.Sale) []domain.SummaryRow {
	grouped := make(map[string]*domain.SummaryRow)
	for _, s := range sales {
		row, ok := grouped[s.Category]
		if !ok {
			row = &domain.SummaryRow{Category: s.Category, Revenue: decimal.Zero}
			grouped[s.Category] = row
		}
		row.Quantity += s.Quantity
		row.Revenue = row.Revenue.Add(s.LineTotal)
	}

	summary := make([]domain.SummaryRow, 0, len(grouped))
	for _, row := range grouped {
		summary = append(summary, *row)
	}
	sort.Slice(summary, func(i, j int) bool {
		if !summary[i].Revenue.Equal(summary[j].Revenue) {
			return summary[i].Revenue.GreaterThan(summary[j].Revenue)
		}
		return summary[i].Category < summary[j].Category
	})
	return summary
}

// Dedupe drops exact duplicate sale rows, keeping first occurrence order.
func Dedupe(sales []domain.Sale) []domain.Sale {
	type key struct {
		id       int64
		date     string
		product  string
		category string
		quantity int64
		price    string
	}
	seen := make(map[key]struct{}, len(sales))
	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		k := key{
			id:       s.ID,
			date:     s.Date.Format("2006-01-02"),
			product:  s.Product,
			category: s.Category,
			quantity: s.Quantity,
			price:    s.UnitPrice.String(),
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// TotalRevenue sums line totals over the detail rows.
func TotalRevenue(sales []domain.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.LineTotal)
	}
	return total
}

// TotalQuantity sums quantities over the detail rows.
func TotalQuantity(sales []domain.Sale) int64 {
	var total int64
	for _, s := range sales {
		total += s.Quantity
	}
	return total
}
