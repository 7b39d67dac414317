package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/smsledger/smsledger/internal/config"
	"github.com/smsledger/smsledger/internal/importer"
	"github.com/smsledger/smsledger/internal/runlog"
)

const reportsDir = "reports"

func newInboxCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "inbox [directory]",
		Short: "Classify every export waiting in <directory>/import",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := loadConfig(configPath, absDir)
			if err != nil {
				return err
			}
			return runInbox(cmd.OutOrStdout(), newLogger(cmd), cfg, absDir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default <directory>/"+config.FileName+" if present)")

	return cmd
}

func runInbox(out io.Writer, logger *log.Logger, cfg *config.Config, dir string) error {
	j, err := newJob(cfg, logger)
	if err != nil {
		return err
	}

	files, err := importer.Scan(dir, j.registry)
	if err != nil {
		return fmt.Errorf("scanning inbox: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No files to classify")
		return nil
	}

	for _, file := range files {
		msgs, err := j.registry.ParseFile(file.Path)
		if err != nil {
			return err
		}

		outPath := filepath.Join(dir, reportsDir, ledgerName(file.Name))
		stats, err := j.write(msgs, out, outPath)
		if err != nil {
			return fmt.Errorf("classifying %s: %w", file.Name, err)
		}

		if err := importer.MarkProcessed(dir, file.Name); err != nil {
			return err
		}

		rel, _ := filepath.Rel(dir, outPath)
		fmt.Fprintf(out, "%s: %d of %d messages -> %s\n", file.Name, stats.Kept, stats.Read, rel)

		// Logged per file so earlier rows survive a later failure.
		entry := runlog.NewEntry(time.Now(), file.Name, rel, stats)
		if err := runlog.Append(dir, []runlog.Entry{entry}); err != nil {
			logger.Warn("failed to write run log", "error", err)
		}
	}
	return nil
}
