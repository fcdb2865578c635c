package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"provable/internal/config"
	"provable/internal/driver"
	"provable/internal/observ"
	"provable/internal/report"
)

type checkOptions struct {
	color   bool
	quiet   bool
	timings bool
	ui      report.ColorMode
	format  string
}

func readCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions

	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	colorMode, err := report.ParseColorMode(colorFlag)
	if err != nil {
		return opts, fmt.Errorf("invalid --color value: %w", err)
	}
	opts.color = colorMode.Enabled(isTerminal(cmd.OutOrStdout()))

	if opts.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = report.ParseColorMode(uiFlag); err != nil {
		return opts, fmt.Errorf("invalid --ui value: %w", err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(strings.TrimSpace(format))
	switch opts.format {
	case "pretty", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	return opts, nil
}

// loadConfig runs the defaults → file → CLI stages and logs the warnings.
func loadConfig(cmd *cobra.Command, logger *slog.Logger) (config.Config, error) {
	overrides, err := configOverrides(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	cfg, warnings, err := config.Load(overrides)
	for _, w := range warnings {
		logger.Warn(w.String())
	}
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// runCheck is the root command: it loads the configuration, scans the
// selected files, prints the findings and the summary, and writes the
// structured report when one is configured. Incomplete ids make it return
// errIncomplete.
func runCheck(cmd *cobra.Command, _ []string) error {
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	logger, err := loggerFromFlags(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	timer := observ.NewTimer()

	var cfg config.Config
	err = timer.Track("config", func() error {
		cfg, err = loadConfig(cmd, logger)
		return err
	})
	if err != nil {
		return err
	}
	if !opts.quiet {
		if dump, jerr := json.Marshal(cfg); jerr == nil {
			logger.Info("effective configuration", "config", string(dump))
		}
	}

	dopts := driver.Options{Logger: logger, Timer: timer}
	files, err := driver.Discover(cfg, dopts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var res *driver.Result
	if !opts.quiet && opts.format == "pretty" && opts.ui.Enabled(isTerminal(out)) && len(files) > 0 {
		res, err = runCheckWithUI(ctx, out, "scanning "+cfg.Directory(), cfg, files, dopts)
	} else {
		res, err = driver.Check(ctx, cfg, files, dopts)
	}
	if err != nil {
		return err
	}

	doc := report.Build(res.Results, res.Bag)
	for _, id := range doc.Skipped {
		logger.Warn("tag id collides with a report key, left out of the report", "id", id)
	}

	pretty := report.PrettyOpts{Color: opts.color}
	summaryOut := out
	switch opts.format {
	case "json":
		if err := report.Encode(out, doc, report.FormatJSON); err != nil {
			return fmt.Errorf("failed to write findings: %w", err)
		}
		summaryOut = errOut
	default:
		if err := report.Pretty(out, res.Results, res.Bag, pretty); err != nil {
			return fmt.Errorf("failed to write findings: %w", err)
		}
	}

	if path := cfg.OutputReport(); path != "" {
		if err := doc.Supports(report.FormatForPath(path)); err != nil {
			return fmt.Errorf("cannot write report %s: %w", path, err)
		}
		if !opts.quiet {
			if err := report.Writing(summaryOut, path); err != nil {
				return err
			}
		}
		if err := timer.Track("report", func() error { return report.WriteFile(path, doc) }); err != nil {
			return err
		}
	}

	if err := report.Summary(summaryOut, len(res.Files), res.Results.Len(), res.OK(), pretty); err != nil {
		return err
	}
	if opts.timings {
		printTimings(errOut, timer)
	}
	if !res.OK() {
		return errIncomplete
	}
	return nil
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if _, err := io.WriteString(out, timer.Summary()); err != nil {
		panic(err)
	}
}
