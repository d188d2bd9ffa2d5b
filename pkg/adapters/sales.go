package adapters

import (
	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/de-tools/sales-reporter/pkg/models/store"
	"github.com/shopspring/decimal"
)

// MapStoreSaleToDomain converts a scanned row into the domain form.
// LineTotal is recomputed from quantity and unit price; the store's
// total_amount column is not trusted for aggregation.
func MapStoreSaleToDomain(record store.SaleRecord) domain.Sale {
	price := decimal.NewFromFloat(record.UnitPrice)
	return domain.Sale{
		ID:        record.ID,
		Date:      record.Date,
		Product:   record.Product,
		Category:  record.Category,
		Quantity:  record.Quantity,
		UnitPrice: price,
		LineTotal: price.Mul(decimal.NewFromInt(record.Quantity)),
	}
}

func MapStoreSalesToDomain(records []store.SaleRecord) []domain.Sale {
	sales := make([]domain.Sale, 0, len(records))
	for _, r := range records {
		sales = append(sales, MapStoreSaleToDomain(r))
	}
	return sales
}
