package sales

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/de-tools/sales-reporter/pkg/models/store"
	"github.com/rs/zerolog"

	_ "github.com/mattn/go-sqlite3"
)

const dateLayout = "2006-01-02"

// Store reads sale records from the sales table. Read-only.
type Store interface {
	CollectSales(ctx context.Context, rng store.SaleRange) ([]store.SaleRecord, error)
}

type salesStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return &salesStore{db: db}
}

// Connect opens the SQLite database at path and verifies the connection.
// A failed open or ping is classified as store_unavailable.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, domain.Classify(domain.ErrStoreUnavailable,
			fmt.Errorf("failed to open database %s: %w", path, err))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, domain.Classify(domain.ErrStoreUnavailable,
			fmt.Errorf("failed to reach database %s: %w", path, err))
	}
	return db, nil
}

func (s *salesStore) CollectSales(ctx context.Context, rng store.SaleRange) ([]store.SaleRecord, error) {
	logger := zerolog.Ctx(ctx)

	query := `
		SELECT
			sale_id,
			sale_date,
			product_name,
			category,
			quantity,
			unit_price,
			total_amount
		FROM sales`

	var (
		conds []string
		args  []any
	)
	if rng.From != nil {
		conds = append(conds, "sale_date >= ?")
		args = append(args, rng.From.Format(dateLayout))
	}
	if rng.To != nil {
		conds = append(conds, "sale_date <= ?")
		args = append(args, rng.To.Format(dateLayout))
	}
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY sale_date DESC, sale_id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Classify(domain.ErrQuery,
			fmt.Errorf("sales query failed: %w", err))
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close sales query rows")
		}
	}(rows)

	var records []store.SaleRecord
	for rows.Next() {
		var (
			rec     store.SaleRecord
			rawDate string
		)
		if err := rows.Scan(&rec.ID, &rawDate, &rec.Product, &rec.Category,
			&rec.Quantity, &rec.UnitPrice, &rec.TotalAmount); err != nil {
			return nil, domain.Classify(domain.ErrQuery,
				fmt.Errorf("failed to scan sale row: %w", err))
		}
		rec.Date, err = parseSaleDate(rawDate)
		if err != nil {
			return nil, domain.Classify(domain.ErrQuery, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Classify(domain.ErrQuery,
			fmt.Errorf("sales row iteration failed: %w", err))
	}

	return records, nil
}

func parseSaleDate(raw string) (time.Time, error) {
	for _, layout := range []string{dateLayout, time.DateTime, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable sale_date %q", raw)
}
