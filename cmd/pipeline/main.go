// Command pipeline runs the crossword statistics pipeline once: it loads the
// newest solve export (or an explicit input file), derives the six card
// documents, and writes them plus a run manifest to the cards directory.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"xwstats/internal/cards"
	"xwstats/internal/config"
	apperrors "xwstats/internal/errors"
	"xwstats/internal/exporter"
	"xwstats/internal/files"
	"xwstats/internal/infrastructure"
	"xwstats/internal/ingest"
)

func main() {
	inFile := flag.String("in", "", "input solve export (.csv or .xlsx); defaults to the newest export in the input directory")
	outDir := flag.String("out", "", "output directory for card documents (defaults to the configured cards directory)")
	buckets := flag.Int("buckets", 0, "histogram bucket count per weekday (overrides config)")
	topN := flag.Int("top", 0, "outlier list size (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create data directories", "error", err)
		os.Exit(1)
	}

	if *inFile == "" {
		*inFile = cfg.Pipeline.InputFile
	}
	if *outDir == "" {
		*outDir = cfg.Paths.CardsDir
	}

	opts := cards.Options{BucketCount: cfg.Pipeline.BucketCount, TopN: cfg.Pipeline.TopN}
	if *buckets > 0 {
		opts.BucketCount = *buckets
	}
	if *topN > 0 {
		opts.TopN = *topN
	}

	if err := run(context.Background(), logger, cfg, *inFile, *outDir, opts); err != nil {
		if apperrors.IsConfig(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, inFile, outDir string, opts cards.Options) error {
	if inFile == "" {
		discovered, err := files.FindLatestExport(cfg.Paths.InputDir)
		if err != nil {
			logger.ErrorContext(ctx, "ingestion failed: no input export found",
				slog.String("input_dir", cfg.Paths.InputDir),
				slog.String("error", err.Error()))
			return err
		}
		inFile = discovered
	}

	logger.InfoContext(ctx, "starting pipeline run",
		slog.String("input", inFile),
		slog.String("output_dir", outDir))

	loader := ingest.NewLoader(logger)
	records, err := loader.Load(ctx, inFile)
	if err != nil {
		// Ingestion failures are fatal: no card can be built without the
		// normalized table.
		logger.ErrorContext(ctx, "ingestion stage failed",
			slog.String("input", inFile),
			slog.String("error", err.Error()))
		return err
	}

	writer := exporter.NewJSONWriter(outDir, logger)
	generator, err := cards.NewGenerator(logger, writer, opts)
	if err != nil {
		logger.ErrorContext(ctx, "invalid pipeline options", slog.String("error", err.Error()))
		return err
	}

	manifest, err := generator.GenerateAll(records)
	if err != nil {
		logger.ErrorContext(ctx, "card generation stage failed", slog.String("error", err.Error()))
		return err
	}

	for _, card := range manifest.Cards {
		if card.Status != "ok" {
			logger.WarnContext(ctx, "card skipped this run",
				slog.String("card", card.Name),
				slog.String("reason", card.Error))
		}
	}
	logger.InfoContext(ctx, "pipeline run complete",
		slog.String("run_id", manifest.RunID),
		slog.Int("input_rows", manifest.InputRows))
	return nil
}
