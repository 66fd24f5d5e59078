package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"patterncore/internal/config"
	"patterncore/internal/logging"
	"patterncore/internal/metrics"
	"patterncore/internal/model"
	"patterncore/internal/notify"
	"patterncore/internal/pipeline"
	"patterncore/internal/sink"
	"patterncore/internal/source"
)

// invalidArgsError marks a flag-parsing or flag-combination failure, the
// exit-code-2 case of §6's CLI surface, distinct from a fatal run error
// (exit code 1).
type invalidArgsError struct{ err error }

func (e *invalidArgsError) Error() string { return e.err.Error() }
func (e *invalidArgsError) Unwrap() error { return e.err }

func invalidArgs(format string, a ...interface{}) error {
	return &invalidArgsError{err: fmt.Errorf(format, a...)}
}

type cliFlags struct {
	tickers     string
	strategies  string
	intervals   string
	period      int
	patterns    string
	output      string
	configPath  string
	schedule    string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:           "patterncore",
		Short:         "Detect head & shoulders, double, and triple chart patterns in OHLCV series.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), f)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &invalidArgsError{err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&f.tickers, "tickers", "", "comma-separated ticker symbols (required)")
	flags.StringVar(&f.strategies, "strategies", "", "comma-separated zigzag strategy names (default: all configured strategies)")
	flags.StringVar(&f.intervals, "intervals", "1h", "comma-separated kline intervals")
	flags.IntVar(&f.period, "period", 500, "number of bars to fetch per tuple")
	flags.StringVar(&f.patterns, "patterns", "ALL", "pattern families to evaluate: HNS, DTB, TTB, or ALL (comma-separated)")
	flags.StringVar(&f.output, "output", "patterncore.csv", "output CSV path")
	flags.StringVar(&f.configPath, "config", "", "optional YAML config overlay path")
	flags.StringVar(&f.schedule, "schedule", "", "optional cron expression; re-runs the sweep on schedule instead of once")
	flags.StringVar(&f.metricsAddr, "metrics-addr", "", "optional address to serve Prometheus /metrics on, e.g. :9090")

	return cmd
}

func runRoot(ctx context.Context, f cliFlags) error {
	tickers := splitCSV(f.tickers)
	if len(tickers) == 0 {
		return invalidArgs("--tickers is required")
	}
	intervals := splitCSV(f.intervals)
	if len(intervals) == 0 {
		return invalidArgs("--intervals must not be empty")
	}
	families, err := parsePatterns(f.patterns)
	if err != nil {
		return invalidArgs("--patterns: %w", err)
	}
	if f.period <= 0 {
		return invalidArgs("--period must be positive, got %d", f.period)
	}

	cfg := config.Default()
	if f.configPath != "" {
		cfg, err = config.LoadYAML(f.configPath)
		if err != nil {
			return invalidArgs("--config: %w", err)
		}
	}
	cfg = config.LoadEnv(cfg)

	strategies := splitCSV(f.strategies)
	if len(strategies) == 0 {
		for name := range cfg.ZigZag.Strategies {
			strategies = append(strategies, name)
		}
	}
	for _, st := range strategies {
		if _, ok := cfg.ZigZag.Strategies[st]; !ok {
			return invalidArgs("unknown strategy %q", st)
		}
	}

	runID := uuid.NewString()
	loggers, err := logging.New(cfg, runID)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer loggers.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewRegistry(reg)
	metricsAddr := f.metricsAddr
	if metricsAddr == "" {
		metricsAddr = cfg.Operational.MetricsAddr
	}
	if metricsAddr != "" {
		serveMetrics(metricsAddr, reg, loggers)
	}

	csvSink, err := sink.NewCSVSink(f.output)
	if err != nil {
		return fmt.Errorf("open output sink: %w", err)
	}
	outSink := buildSink(cfg, csvSink, loggers)

	prod := source.NewHTTPSeries("https://api.binance.com", nil, loggers.Run)

	tuples := buildTuples(tickers, intervals, strategies)
	req := pipeline.Request{
		Tuples:      tuples,
		Families:    families,
		Period:      f.period,
		Concurrency: 10,
	}
	driver := &pipeline.Driver{Config: cfg, Producer: prod, Sink: outSink, Metrics: m, Log: loggers}

	notifier := buildNotifier(cfg)

	runOnce := func() error {
		result, err := driver.Run(ctx, req)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		loggers.Run.Info().
			Int("tuples", result.TuplesProcessed).
			Int("records", len(result.Records)).
			Msg("run complete")
		if notifier != nil {
			summary := notify.RunSummary{
				Tuples:   result.TuplesProcessed,
				Accepted: len(result.Records),
				ByFamily: result.ByFamily,
			}
			if err := notifier.Notify(summary); err != nil {
				loggers.Run.Warn().Err(err).Msg("run summary notification failed")
			}
		}
		return nil
	}

	if f.schedule == "" {
		return runOnce()
	}
	return runScheduled(f.schedule, runOnce, loggers)
}

// runScheduled re-runs runOnce on expr's cron schedule instead of once,
// blocking forever; a failing run is logged rather than exiting, so one
// bad cycle doesn't kill the schedule.
func runScheduled(expr string, runOnce func() error, loggers *logging.Loggers) error {
	c := cron.New()
	if _, err := c.AddFunc(expr, func() {
		if err := runOnce(); err != nil {
			loggers.Run.Error().Err(err).Msg("scheduled run failed")
		}
	}); err != nil {
		return invalidArgs("--schedule: %w", err)
	}
	c.Start()
	defer c.Stop()

	select {}
}

func serveMetrics(addr string, reg *prometheus.Registry, loggers *logging.Loggers) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggers.Run.Error().Err(err).Msg("metrics server stopped")
		}
	}()
}

func buildSink(cfg *config.Config, csvSink *sink.CSVSink, loggers *logging.Loggers) sink.Sink {
	sinks := []sink.Sink{csvSink}
	if cfg.Operational.MongoURI != "" {
		mongoSink, err := sink.NewMongoSink(cfg.Operational.MongoURI, "patterncore", "pattern_records")
		if err != nil {
			loggers.Run.Warn().Err(err).Msg("mongo sink unavailable, continuing with CSV only")
		} else {
			sinks = append(sinks, mongoSink)
		}
	}
	if len(sinks) == 1 {
		return sinks[0]
	}
	return sink.NewTee(sinks...)
}

func buildNotifier(cfg *config.Config) *notify.TelegramNotifier {
	if cfg.Operational.TelegramBotToken == "" || cfg.Operational.TelegramChatID == "" {
		return nil
	}
	n, err := notify.NewTelegramNotifier(cfg.Operational.TelegramBotToken, cfg.Operational.TelegramChatID)
	if err != nil {
		return nil
	}
	return n
}

func buildTuples(tickers, intervals, strategies []string) []pipeline.Tuple {
	var out []pipeline.Tuple
	for _, tk := range tickers {
		for _, iv := range intervals {
			for _, st := range strategies {
				out = append(out, pipeline.Tuple{Ticker: tk, Interval: iv, Strategy: st})
			}
		}
	}
	return out
}

func parsePatterns(raw string) ([]model.Family, error) {
	parts := splitCSV(raw)
	seen := map[model.Family]bool{}
	for _, p := range parts {
		switch strings.ToUpper(p) {
		case "ALL":
			seen[model.FamilyHNS] = true
			seen[model.FamilyDTB] = true
			seen[model.FamilyTTB] = true
		case "HNS":
			seen[model.FamilyHNS] = true
		case "DTB":
			seen[model.FamilyDTB] = true
		case "TTB":
			seen[model.FamilyTTB] = true
		default:
			return nil, fmt.Errorf("unknown pattern family %q", p)
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("at least one pattern family is required")
	}
	out := make([]model.Family, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	return out, nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
