package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gptpoet/qasida/internal/config"
	"github.com/gptpoet/qasida/internal/ingest"
	"github.com/gptpoet/qasida/internal/llm"
	"github.com/gptpoet/qasida/internal/pipeline"
	"github.com/gptpoet/qasida/internal/registry"
	"github.com/gptpoet/qasida/internal/report"
	"github.com/gptpoet/qasida/internal/store"
)

// Flags
var (
	inFile   = flag.String("in", "poetry.txt", "input file (.txt, .hocr/.html, .pdf)")
	outFile  = flag.String("out", "extracted_poetry.txt", "output file, one verse per line")
	csvFile  = flag.String("csv", "", "optional CSV of verses with source positions")
	dbPath   = flag.String("db", "", "optional SQLite verse store (QASIDA_DB when -store is set)")
	useStore = flag.Bool("store", false, "save the run to the verse store")
	useLLM   = flag.Bool("llm", false, "ask the chat model to pre-extract verses (LLM_ENABLED)")
	workers  = flag.Int("workers", -1, "classification workers; -1 uses QASIDA_WORKERS")
	preview  = flag.Int("preview", -1, "lines to preview; -1 uses QASIDA_PREVIEW")
	debug    = flag.Bool("debug", false, "debug logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		slog.Error("extract failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cfg)

	text, err := ingest.ReadFile(*inFile)
	if err != nil {
		return err
	}
	slog.Info("input read", "path", *inFile, "bytes", len(text))

	if cfg.LLM.Enabled {
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("-llm needs LLM_API_KEY")
		}
		ex, err := llm.NewOpenAI(cfg.LLM)
		if err != nil {
			return err
		}
		if text, err = ex.Extract(ctx, text); err != nil {
			return err
		}
		slog.Info("model pre-extraction done", "model", cfg.LLM.Model, "bytes", len(text))
	}

	res := pipeline.New(registry.Default()).RunConcurrent(text, cfg.Workers)
	for rule, n := range res.Stats.Dropped {
		slog.Debug("dropped", "rule", rule, "lines", n)
	}

	if err := report.WriteLines(*outFile, res.Lines); err != nil {
		return err
	}
	slog.Info("verses written", "path", *outFile, "lines", len(res.Lines))

	if *csvFile != "" {
		if err := report.WriteCSV(*csvFile, *inFile, res.Lines); err != nil {
			return err
		}
	}

	if *useStore {
		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err := st.SaveRun(ctx, *inFile, res.Lines)
		if err != nil {
			return err
		}
		slog.Info("run stored", "db", cfg.DBPath, "run", runID)
	}

	report.Preview(stdout, res.Lines, cfg.Preview)
	report.Stats(stdout, res.Stats)
	return nil
}

// applyFlags lets explicit flags win over the environment.
func applyFlags(cfg *config.Cfg) {
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *useLLM {
		cfg.LLM.Enabled = true
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *preview >= 0 {
		cfg.Preview = *preview
	}
}
