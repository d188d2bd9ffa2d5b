package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/de-tools/sales-reporter/pkg/adapters"
	"github.com/de-tools/sales-reporter/pkg/models/domain"
	"github.com/de-tools/sales-reporter/pkg/models/store"
	"github.com/de-tools/sales-reporter/pkg/services/delivery"
	"github.com/de-tools/sales-reporter/pkg/services/report"
	"github.com/rs/zerolog"
)

// Extractor pulls the sale records for the reporting period.
type Extractor interface {
	CollectSales(ctx context.Context, rng store.SaleRange) ([]store.SaleRecord, error)
}

// Renderer writes the report artifact.
type Renderer interface {
	Render(ctx context.Context, summary []domain.SummaryRow, detail []domain.Sale, path string) error
}

type Settings struct {
	OutputDir       string
	Range           store.SaleRange
	DeliveryEnabled bool
	Sender          string
	Recipient       string
}

// Pipeline sequences extract → aggregate → render → deliver. Each stage is
// attempted once; the first failure ends the run.
type Pipeline struct {
	extractor  Extractor
	renderer   Renderer
	dispatcher delivery.Dispatcher
	settings   Settings
	now        func() time.Time
}

func NewPipeline(extractor Extractor, renderer Renderer, dispatcher delivery.Dispatcher, settings Settings) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		renderer:   renderer,
		dispatcher: dispatcher,
		settings:   settings,
		now:        time.Now,
	}
}

// Result describes a finished run for the caller (the external scheduler
// only sees the exit status; the result carries the rest for logging).
type Result struct {
	Stage        domain.Stage // StageDone or StageFailed
	FailedAt     domain.Stage
	ArtifactPath string
	RowCount     int
}

// StageError records which stage failed and why.
type StageError struct {
	Stage domain.Stage
	Kind  domain.ErrorKind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{Stage: domain.StageIdle}

	p.transition(ctx, &res, domain.StageExtracting)
	records, err := p.extractor.CollectSales(ctx, p.settings.Range)
	if err != nil {
		return p.fail(ctx, res, domain.StageExtracting, err)
	}

	p.transition(ctx, &res, domain.StageAggregating)
	sales := report.Dedupe(adapters.MapStoreSalesToDomain(records))
	summary := report.Summarize(sales)
	res.RowCount = len(sales)
	if len(sales) == 0 {
		// Zero rows is not a failure; the run still produces a valid,
		// chartless artifact. Flagged so the scheduler log shows it.
		zerolog.Ctx(ctx).Warn().Msg("no sale records in reporting period")
	}

	p.transition(ctx, &res, domain.StageRendering)
	generatedAt := p.now()
	artifact := filepath.Join(p.settings.OutputDir,
		fmt.Sprintf("sales_report_%s.xlsx", generatedAt.Format("20060102_150405")))
	if err := p.renderer.Render(ctx, summary, sales, artifact); err != nil {
		return p.fail(ctx, res, domain.StageRendering, err)
	}
	res.ArtifactPath = artifact

	if p.settings.DeliveryEnabled {
		p.transition(ctx, &res, domain.StageDelivering)
		env := delivery.Envelope{
			From:           p.settings.Sender,
			To:             p.settings.Recipient,
			Subject:        fmt.Sprintf("Sales Report - %s", generatedAt.Format("2006-01-02")),
			Body:           emailBody(generatedAt),
			AttachmentPath: artifact,
		}
		if err := p.dispatcher.Send(ctx, env); err != nil {
			return p.fail(ctx, res, domain.StageDelivering, err)
		}
	} else {
		p.transition(ctx, &res, domain.StageSkipped)
	}

	p.transition(ctx, &res, domain.StageDone)
	return res, nil
}

func (p *Pipeline) transition(ctx context.Context, res *Result, stage domain.Stage) {
	res.Stage = stage
	zerolog.Ctx(ctx).Info().
		Str("stage", string(stage)).
		Msg("stage transition")
}

func (p *Pipeline) fail(ctx context.Context, res Result, stage domain.Stage, err error) (Result, error) {
	kind := domain.KindOf(err)
	zerolog.Ctx(ctx).Error().
		Str("stage", string(stage)).
		Str("kind", string(kind)).
		Err(err).
		Msg("stage failed")
	res.Stage = domain.StageFailed
	res.FailedAt = stage
	return res, &StageError{Stage: stage, Kind: kind, Err: err}
}

func emailBody(generatedAt time.Time) string {
	return fmt.Sprintf(`Hello,

Please find attached the automated sales report generated on %s.

The report includes:
- Summary sheet with aggregated sales data
- Detailed data sheet with all transactions
- Visual charts for quick insights

Best regards,
Automated Reporting System
`, generatedAt.Format("2006-01-02 15:04:05"))
}
