package cards

import (
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "xwstats/internal/errors"
	"xwstats/internal/exporter"
	"xwstats/internal/metrics"
	"xwstats/pkg/contracts/domain"
)

// ManifestName is the filename of the run manifest, written next to the cards.
const ManifestName = "manifest"

// Options are the caller-supplied pipeline parameters.
type Options struct {
	BucketCount int `validate:"required,min=1"`
	TopN        int `validate:"required,min=1"`
}

// DefaultOptions returns the standard parameters: 8 histogram buckets and
// top-10 outlier lists.
func DefaultOptions() Options {
	return Options{BucketCount: 8, TopN: 10}
}

// CardStatus records the outcome of one card within a run.
type CardStatus struct {
	Name   string `json:"name"`
	File   string `json:"file,omitempty"`
	Rows   int    `json:"rows"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Manifest describes one pipeline run: which cards were generated, which
// failed and why. A run with some failed and some generated cards is a
// partial success, visible here rather than as a process failure.
type Manifest struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	InputRows   int          `json:"input_rows"`
	Cards       []CardStatus `json:"cards"`
}

// Generator derives all six cards from a normalized record table and writes
// them through the exporter.
type Generator struct {
	logger *slog.Logger
	writer *exporter.JSONWriter
	opts   Options
}

var validate = validator.New()

// NewGenerator creates a generator after validating the pipeline options.
// Invalid bucket count or top-N is a ConfigError.
func NewGenerator(logger *slog.Logger, writer *exporter.JSONWriter, opts Options) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validate.Struct(opts); err != nil {
		return nil, apperrors.NewConfigError("invalid pipeline options", err)
	}
	return &Generator{logger: logger, writer: writer, opts: opts}, nil
}

// cardResult is one built card before it is written.
type cardResult struct {
	name string
	doc  interface{}
	rows int
	err  error
}

// GenerateAll builds every card over the same immutable record table and
// writes the results plus a run manifest. Cards are built concurrently, one
// goroutine per card, each owning its own result slot; none writes shared
// state. Per-card failures land in the manifest; GenerateAll itself only
// errors when no card could be generated at all, or when writing fails.
func (g *Generator) GenerateAll(records []domain.SolveRecord) (*Manifest, error) {
	start := time.Now()
	runID := uuid.New().String()

	g.logger.Info("starting card generation",
		slog.String("run_id", runID),
		slog.Int("records", len(records)),
		slog.Int("bucket_count", g.opts.BucketCount),
		slog.Int("top_n", g.opts.TopN))

	results := make([]cardResult, 6)
	var eg errgroup.Group
	eg.Go(func() error {
		doc, err := BuildSummary(records)
		results[0] = cardResult{name: domain.CardSummary, doc: doc, rows: 1, err: err}
		return nil
	})
	eg.Go(func() error {
		rows := BuildWeeklySummary(records)
		results[1] = cardResult{name: domain.CardWeekly, doc: rows, rows: len(rows)}
		return nil
	})
	eg.Go(func() error {
		rows, err := BuildHistograms(records, g.opts.BucketCount)
		results[2] = cardResult{name: domain.CardHistogram, doc: emptyAsSlice(rows), rows: len(rows), err: err}
		return nil
	})
	eg.Go(func() error {
		rows := BuildEvolution(records)
		results[3] = cardResult{name: domain.CardEvolution, doc: rows, rows: len(rows)}
		return nil
	})
	eg.Go(func() error {
		outliers, err := BuildOutliers(records, g.opts.TopN)
		if err != nil {
			results[4] = cardResult{name: domain.CardSlowest, err: err}
			results[5] = cardResult{name: domain.CardFastest, err: err}
			return nil
		}
		results[4] = cardResult{name: domain.CardSlowest, doc: emptyAsSlice(outliers.Slowest), rows: len(outliers.Slowest)}
		results[5] = cardResult{name: domain.CardFastest, doc: emptyAsSlice(outliers.Fastest), rows: len(outliers.Fastest)}
		return nil
	})
	// Builders report failures through their result slot
	_ = eg.Wait()

	manifest := &Manifest{
		RunID:       runID,
		GeneratedAt: start.UTC(),
		InputRows:   len(records),
		Cards:       make([]CardStatus, 0, len(results)),
	}

	var errs []error
	generated := 0
	for _, res := range results {
		status := CardStatus{Name: res.name, Rows: res.rows, Status: "ok"}
		if res.err == nil {
			file, err := g.writer.WriteDocument(res.name, res.doc)
			if err != nil {
				res.err = err
			} else {
				status.File = file
				metrics.CardsGenerated.WithLabelValues(res.name).Inc()
				generated++
			}
		}
		if res.err != nil {
			status.Status = "failed"
			status.Rows = 0
			status.Error = res.err.Error()
			errs = append(errs, res.err)
			g.logger.Error("card generation failed",
				slog.String("run_id", runID),
				slog.String("card", res.name),
				slog.String("error", res.err.Error()))
		}
		manifest.Cards = append(manifest.Cards, status)
	}

	if _, err := g.writer.WriteDocument(ManifestName, manifest); err != nil {
		return manifest, err
	}

	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	switch {
	case generated == 0:
		metrics.PipelineRuns.WithLabelValues("failed").Inc()
		return manifest, stderrors.Join(errs...)
	case len(errs) > 0:
		metrics.PipelineRuns.WithLabelValues("partial").Inc()
	default:
		metrics.PipelineRuns.WithLabelValues("ok").Inc()
	}

	g.logger.Info("card generation finished",
		slog.String("run_id", runID),
		slog.Int("generated", generated),
		slog.Int("failed", len(errs)),
		slog.Duration("elapsed", time.Since(start)))
	return manifest, nil
}

// emptyAsSlice keeps nil row slices marshaling as [] rather than null.
func emptyAsSlice[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
