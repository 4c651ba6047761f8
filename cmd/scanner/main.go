// The scanner is the batch stand-in for the extension's content script:
// it reads text units from a JSONL file (or stdin), runs each through the
// classification pipeline with the stored settings, and persists the
// resulting analysis records.
package main

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/textshield/textshield/config"
	"github.com/textshield/textshield/internal/clients"
	"github.com/textshield/textshield/internal/logging"
	"github.com/textshield/textshield/internal/models"
	"github.com/textshield/textshield/internal/pipeline"
	"github.com/textshield/textshield/internal/rephrase"
	"github.com/textshield/textshield/internal/storage"
)

func main() {
	inputPath := flag.String("input", "-", "JSONL file of text units, '-' for stdin")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Scanner] Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *inputPath); err != nil {
		slog.Error("[Scanner] Scan failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, inputPath string) error {
	store, err := storage.NewSQLite(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	settings, err := store.GetUserSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	var dedup *clients.DedupClient
	if cfg.ValkeyAddress != "" {
		dedup, err = clients.NewDedupClient(cfg.ValkeyAddress, cfg.ValkeyPassword, cfg.ValkeyTLS)
		if err != nil {
			// Dedup is an optimization; scan without it rather than abort.
			slog.Warn("[Scanner] Dedup unavailable, continuing without it",
				slog.String("error", err.Error()))
			dedup = nil
		} else {
			defer dedup.Close()
		}
	}

	units, err := readUnits(inputPath)
	if err != nil {
		return err
	}

	fresh := units
	skipped := 0
	if dedup != nil {
		fresh = fresh[:0]
		for _, unit := range units {
			if dedup.IsProcessed(ctx, unit.ID) {
				skipped++
				continue
			}
			fresh = append(fresh, unit)
		}
	}

	pipe := pipeline.New(buildEngine(cfg))
	records := pipe.ProcessBatch(ctx, fresh, *settings)

	stored := 0
	for i := range records {
		if err := store.CreateAnalysisResult(ctx, &records[i]); err != nil {
			slog.Error("[Scanner] Failed to store record",
				slog.String("domain", records[i].Domain),
				slog.String("error", err.Error()))
			continue
		}
		stored++
	}

	if dedup != nil {
		for _, unit := range fresh {
			if err := dedup.MarkProcessed(ctx, unit.ID); err != nil {
				slog.Warn("[Scanner] Failed to mark unit processed",
					slog.String("unit_id", unit.ID),
					slog.String("error", err.Error()))
			}
		}
	}

	slog.Info("[Scanner] Scan complete",
		slog.Int("units", len(units)),
		slog.Int("skipped", skipped),
		slog.Int("flagged", len(records)),
		slog.Int("stored", stored))
	return nil
}

func buildEngine(cfg config.Config) *rephrase.Engine {
	if cfg.OpenAIAPIKey == "" {
		return rephrase.NewEngine(nil)
	}
	client := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.RephraseTimeout)
	return rephrase.NewEngine(rephrase.NewOpenAIRewriter(client, cfg.OpenAIModel))
}

func readUnits(inputPath string) ([]models.TextUnit, error) {
	var in io.Reader = os.Stdin
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var units []models.TextUnit
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var unit models.TextUnit
		if err := json.Unmarshal(raw, &unit); err != nil {
			slog.Warn("[Scanner] Skipping malformed line",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		if unit.ID == "" {
			unit.ID = unitID(unit)
		}
		units = append(units, unit)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return units, nil
}

// unitID derives a stable identity from the unit's text and location so
// dedup survives across scanner runs.
func unitID(unit models.TextUnit) string {
	raw := fmt.Sprintf("%s:%s", unit.Text, unit.URL)
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}
