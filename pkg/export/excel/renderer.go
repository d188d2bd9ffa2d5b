package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Summary"
	sheetData    = "Data"

	// summary table starts below the title, generated-at and totals rows
	summaryHeaderRow = 5

	headerBlue  = "4472C4"
	headerGreen = "70AD47"

	currencyFmt = "$#,##0.00"
)

// Renderer writes the summary and detail tables into a two-sheet workbook
// with two charts bound to the Summary sheet.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render produces the workbook at path. The file is written to a temporary
// sibling first and moved into place, so a failed render never leaves a
// partial artifact at the canonical path.
func (r *Renderer) Render(ctx context.Context, summary []domain.SummaryRow, detail []domain.Sale, path string) error {
	logger := zerolog.Ctx(ctx)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return domain.Classify(domain.ErrOutputWrite, err)
	}
	if _, err := f.NewSheet(sheetData); err != nil {
		return domain.Classify(domain.ErrOutputWrite, err)
	}

	if err := r.writeSummarySheet(f, summary); err != nil {
		return domain.Classify(domain.ErrOutputWrite, err)
	}
	if err := r.writeDataSheet(f, detail); err != nil {
		return domain.Classify(domain.ErrOutputWrite, err)
	}
	if len(summary) > 0 {
		if err := addCharts(f, len(summary)); err != nil {
			return domain.Classify(domain.ErrOutputWrite, err)
		}
	} else {
		logger.Warn().Msg("zero-row summary, charts omitted")
	}

	return r.place(f, path)
}

func (r *Renderer) writeSummarySheet(f *excelize.File, summary []domain.SummaryRow) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerBlue}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	italicStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true}})
	if err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	hdrStyle, err := headerStyle(f, headerBlue)
	if err != nil {
		return err
	}
	moneyStyle, err := currencyStyle(f)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sheetSummary, "A1", "SALES REPORT SUMMARY"); err != nil {
		return err
	}
	if err := f.MergeCell(sheetSummary, "A1", "C1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "C1", titleStyle); err != nil {
		return err
	}

	generatedAt := r.now().Format("2006-01-02 15:04:05")
	if err := f.SetCellValue(sheetSummary, "A2", "Generated on: "+generatedAt); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A2", "A2", italicStyle); err != nil {
		return err
	}

	totalRevenue := totalSummaryRevenue(summary)
	if err := f.SetCellValue(sheetSummary, "A3", "Overall Totals:"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A3", "A3", boldStyle); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, "B3",
		fmt.Sprintf("Total Revenue: $%s", totalRevenue.StringFixed(2))); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, "C3",
		fmt.Sprintf("Total Quantity: %d", totalSummaryQuantity(summary))); err != nil {
		return err
	}

	headers := []string{"Category", "Total Quantity", "Total Revenue"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, summaryHeaderRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetSummary,
		fmt.Sprintf("A%d", summaryHeaderRow),
		fmt.Sprintf("C%d", summaryHeaderRow), hdrStyle); err != nil {
		return err
	}

	for i, row := range summary {
		n := summaryHeaderRow + 1 + i
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", n), row.Category); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", n), row.Quantity); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", n), row.Revenue.InexactFloat64()); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetSummary, fmt.Sprintf("C%d", n), fmt.Sprintf("C%d", n), moneyStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetSummary, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "B", "B", 15); err != nil {
		return err
	}
	return f.SetColWidth(sheetSummary, "C", "C", 18)
}

func (r *Renderer) writeDataSheet(f *excelize.File, detail []domain.Sale) error {
	hdrStyle, err := headerStyle(f, headerGreen)
	if err != nil {
		return err
	}
	moneyStyle, err := currencyStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Sale ID", "Date", "Product", "Category", "Quantity", "Unit Price", "Line Total", "Month", "Weekday"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetData, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetData, "A1", "I1", hdrStyle); err != nil {
		return err
	}

	for i, s := range detail {
		n := i + 2
		values := []any{
			s.ID,
			s.Date.Format("2006-01-02"),
			s.Product,
			s.Category,
			s.Quantity,
			s.UnitPrice.InexactFloat64(),
			s.LineTotal.InexactFloat64(),
			s.Month(),
			s.Weekday(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, n)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetData, cell, v); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheetData,
			fmt.Sprintf("F%d", n), fmt.Sprintf("G%d", n), moneyStyle); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetData, "A", "I", 15)
}

// addCharts binds a column chart (revenue by category) and a pie chart
// (quantity by category) to the summary table ranges.
func addCharts(f *excelize.File, rows int) error {
	firstDataRow := summaryHeaderRow + 1
	lastDataRow := summaryHeaderRow + rows

	categories := fmt.Sprintf("%s!$A$%d:$A$%d", sheetSummary, firstDataRow, lastDataRow)
	revenue := fmt.Sprintf("%s!$C$%d:$C$%d", sheetSummary, firstDataRow, lastDataRow)
	quantity := fmt.Sprintf("%s!$B$%d:$B$%d", sheetSummary, firstDataRow, lastDataRow)

	if err := f.AddChart(sheetSummary, "E5", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$C$%d", sheetSummary, summaryHeaderRow),
			Categories: categories,
			Values:     revenue,
		}},
		Title:     []excelize.RichTextRun{{Text: "Revenue by Category"}},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Category"}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Total Revenue ($)"}}},
		Dimension: excelize.ChartDimension{Width: 600, Height: 320},
	}); err != nil {
		return fmt.Errorf("failed to add revenue chart: %w", err)
	}

	if err := f.AddChart(sheetSummary, "E22", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$%d", sheetSummary, summaryHeaderRow),
			Categories: categories,
			Values:     quantity,
		}},
		Title:     []excelize.RichTextRun{{Text: "Quantity by Category"}},
		Dimension: excelize.ChartDimension{Width: 600, Height: 320},
	}); err != nil {
		return fmt.Errorf("failed to add quantity chart: %w", err)
	}

	return nil
}

// place saves the workbook next to path and renames it into place.
func (r *Renderer) place(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp")

	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return domain.Classify(domain.ErrOutputWrite,
			fmt.Errorf("failed to write workbook to %s: %w", dir, err))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return domain.Classify(domain.ErrOutputWrite,
			fmt.Errorf("failed to place workbook at %s: %w", path, err))
	}
	return nil
}

func headerStyle(f *excelize.File, fill string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func currencyStyle(f *excelize.File) (int, error) {
	fmtStr := currencyFmt
	return f.NewStyle(&excelize.Style{CustomNumFmt: &fmtStr})
}

func totalSummaryRevenue(summary []domain.SummaryRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range summary {
		total = total.Add(row.Revenue)
	}
	return total
}

func totalSummaryQuantity(summary []domain.SummaryRow) int64 {
	var total int64
	for _, row := range summary {
		total += row.Quantity
	}
	return total
}
