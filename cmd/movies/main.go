package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/tailored-agentic-units/statekit/config"
	"github.com/tailored-agentic-units/statekit/examples/movies"
	"github.com/tailored-agentic-units/statekit/observability"
	"github.com/tailored-agentic-units/statekit/tracing"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path or URL of a JSON, YAML, or TOML config file")
		moviesFile = flag.String("movies", "", "Path or URL of a YAML or JSON movie list (default: built-in catalog)")
		delay      = flag.Duration("delay", 200*time.Millisecond, "Simulated catalog latency")
		trace      = flag.Bool("trace", false, "Export job spans to stdout (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
		observer   = flag.String("observer", "", "Machine event observer, one of: "+strings.Join(observability.Registered(), ", ")+" (overrides config)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.DefaultConfig()
	cfg.Machine.Name = "movies"
	if *configFile != "" {
		loaded, err := config.Load(ctx, *configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *trace {
		cfg.Tracing.Enabled = true
	}
	if *observer != "" {
		cfg.Machine.Observer = *observer
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	slog.SetDefault(logger)

	if cfg.Tracing.Enabled {
		if err := tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, cfg.Tracing.Output); err != nil {
			log.Fatalf("Failed to initialize tracing: %v", err)
		}
		defer func() {
			if err := tracing.Shutdown(context.Background()); err != nil {
				logger.Error("tracing shutdown failed", "error", err)
			}
		}()
	}

	list := movies.DefaultMovies()
	if *moviesFile != "" {
		var err error
		if list, err = movies.ReadMovies(ctx, *moviesFile); err != nil {
			log.Fatalf("Failed to load movies: %v", err)
		}
	}

	m, err := movies.NewMachine(movies.NewMemoryCatalog(*delay, list...), cfg.Machine)
	if err != nil {
		log.Fatalf("Failed to create machine: %v", err)
	}

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		step := 0
		for state := range m.Observe(ctx) {
			fmt.Printf("[%02d] %s\n", step, describe(state))
			step++
		}
	}()

	if err := run(ctx, m); err != nil {
		logger.Error("demo failed", "error", err)
	}

	if err := m.Close(); err != nil {
		logger.Error("close failed", "error", err)
	}
	<-printed

	metrics := m.Metrics()
	fmt.Printf("\nJobs: %d started, %d completed, %d cancelled\n",
		metrics.JobsStarted, metrics.JobsCompleted, metrics.JobsCancelled)
	fmt.Printf("Updates: %d applied, %d dropped\n", metrics.UpdatesApplied, metrics.UpdatesDropped)
}
