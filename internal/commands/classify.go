package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smsledger/smsledger/internal/classify"
	"github.com/smsledger/smsledger/internal/config"
	"github.com/smsledger/smsledger/internal/importer"
	"github.com/smsledger/smsledger/internal/ledger"
	"github.com/smsledger/smsledger/internal/model"
	"github.com/smsledger/smsledger/internal/runlog"
)

type classifyOptions struct {
	output          string
	format          string
	configPath      string
	creditsOnly     bool
	legitimateOnly  bool
	timestampPolicy string
	logDir          string
}

func newClassifyCommand() *cobra.Command {
	var opts classifyOptions

	cmd := &cobra.Command{
		Use:   "classify <input>",
		Short: "Classify an SMS export into a ledger CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath, ".")
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("credits-only") {
				cfg.CreditsOnly = opts.creditsOnly
			}
			if flags.Changed("legitimate-only") {
				cfg.LegitimateOnly = opts.legitimateOnly
			}
			if flags.Changed("timestamp-policy") {
				cfg.TimestampPolicy = opts.timestampPolicy
			}
			return runClassify(cmd.OutOrStdout(), newLogger(cmd), cfg, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "ledger CSV path (default stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "input format: csv or json (default from extension)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	cmd.Flags().BoolVar(&opts.creditsOnly, "credits-only", false, "keep only credited records")
	cmd.Flags().BoolVar(&opts.legitimateOnly, "legitimate-only", false, "drop credits that look promotional")
	cmd.Flags().StringVar(&opts.timestampPolicy, "timestamp-policy", "", "on a bad timestamp: fail or skip")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "append a row to <dir>/logs/run-log.csv")

	return cmd
}

// loadConfig reads path, or <dir>/smsledger.yaml when path is empty and that
// file exists, or the built-in defaults otherwise.
func loadConfig(path, dir string) (*config.Config, error) {
	if path == "" {
		candidate := filepath.Join(dir, config.FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runClassify(out io.Writer, logger *log.Logger, cfg *config.Config, input string, opts classifyOptions) error {
	job, err := newJob(cfg, logger)
	if err != nil {
		return err
	}

	parser := job.registry.ForFile(input)
	if opts.format != "" {
		parser = job.registry.Get(opts.format)
		if parser == nil {
			return fmt.Errorf("unknown format %q", opts.format)
		}
	}
	if parser == nil {
		return fmt.Errorf("no parser for %s (use --format)", filepath.Base(input))
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	msgs, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(input), err)
	}

	outName := opts.output
	if outName == "" {
		outName = "-"
	}
	stats, err := job.write(msgs, out, opts.output)
	if err != nil {
		return err
	}
	logger.Info("classified", "input", input, "read", stats.Read, "kept", stats.Kept,
		"unclassified", stats.Unclassified, "no_amount", stats.NoAmount, "bad_timestamp", stats.BadTimestamp)

	if opts.logDir != "" {
		entry := runlog.NewEntry(time.Now(), input, outName, stats)
		if err := runlog.Append(opts.logDir, []runlog.Entry{entry}); err != nil {
			logger.Warn("failed to write run log", "error", err)
		}
	}
	return nil
}

// job is one configured classification setup shared by classify and inbox.
type job struct {
	pipeline *classify.Pipeline
	registry *importer.Registry
	filters  []ledger.FilterFunc
	rules    classify.Rules
	logger   *log.Logger
}

func newJob(cfg *config.Config, logger *log.Logger) (*job, error) {
	rules, err := cfg.ClassifyRules()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	p, err := classify.New(rules, classify.WithLogger(logger), classify.WithTimestampPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}

	var filters []ledger.FilterFunc
	if cfg.CreditsOnly {
		filters = append(filters, ledger.CreditsOnly)
	}
	if cfg.LegitimateOnly {
		filters = append(filters, ledger.LegitimateOnly)
	}

	return &job{
		pipeline: p,
		registry: importer.DefaultRegistry(cfg.Columns()),
		filters:  filters,
		rules:    rules,
		logger:   logger,
	}, nil
}

// write classifies msgs and writes the ledger to path, or to out when path is empty.
func (j *job) write(msgs []model.Message, out io.Writer, path string) (classify.Stats, error) {
	batch, err := j.pipeline.Run(msgs)
	if err != nil {
		return classify.Stats{}, err
	}

	records := ledger.Apply(batch.Records, j.filters...)
	if errs := ledger.ValidateRecords(records, j.rules.MinAmount); len(errs) > 0 {
		for _, e := range errs {
			j.logger.Error("invalid record", "error", e)
		}
		return batch.Stats, fmt.Errorf("%d invalid records, ledger not written", len(errs))
	}
	if len(records) < len(batch.Records) {
		j.logger.Debug("filtered records", "before", len(batch.Records), "after", len(records))
	}

	if path == "" {
		if err := ledger.WriteRecords(out, records); err != nil {
			return batch.Stats, fmt.Errorf("writing ledger: %w", err)
		}
		return batch.Stats, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return batch.Stats, fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return batch.Stats, fmt.Errorf("creating ledger: %w", err)
	}
	if err := ledger.WriteRecords(f, records); err != nil {
		f.Close()
		return batch.Stats, fmt.Errorf("writing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return batch.Stats, fmt.Errorf("closing ledger: %w", err)
	}
	return batch.Stats, nil
}

// ledgerName maps an input file name to its report name, e.g. sms.csv to sms.ledger.csv.
func ledgerName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ledger.csv"
}
