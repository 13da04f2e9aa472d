package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/config"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/fetcher"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/gitinfo"
	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/tui"
	"github.com/fingerprinter/fingerprinter/internal/application"
	"github.com/fingerprinter/fingerprinter/internal/domain"
	"github.com/fingerprinter/fingerprinter/internal/shared"
)

type fingerprintOptions struct {
	verbose     bool
	jsonOutput  bool
	rulesPath   string
	configPath  string
	timeout     time.Duration
	concurrency int
}

func (o *fingerprintOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Show per-category matches and debug logs")
	cmd.Flags().BoolVar(&o.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().StringVar(&o.rulesPath, "rules", "", "Rule file (YAML or JSON); defaults to the built-in Rails rules")
	cmd.Flags().StringVar(&o.configPath, "config", "", "Settings file (default ./"+config.DefaultSettingsFile+" if present)")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "Per-request timeout (e.g. 5s)")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 0, "Number of URLs fetched in parallel")
}

func runFingerprint(cmd *cobra.Command, opts *fingerprintOptions, urls []string) error {
	settings, err := resolveSettings(cmd, opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("rules") {
		settings.Rules = opts.rulesPath
	}
	if cmd.Flags().Changed("timeout") {
		settings.Timeout = opts.timeout
	}
	if cmd.Flags().Changed("concurrency") {
		settings.Concurrency = opts.concurrency
	}
	if opts.verbose {
		settings.Logging.Level = "debug"
	}
	if err := settings.Validate(); err != nil {
		return &domain.ConfigError{Source: "flags", Err: err}
	}

	logger := newLogger(cmd.ErrOrStderr(), settings)

	rules, err := application.NewRulesService(config.NewRulesLoader(), gitinfo.New()).Load(settings.Rules)
	if err != nil {
		return err
	}
	logger.Debug("rules loaded", "source", rules.Source, "categories", rules.Len())

	svc := application.NewFingerprintService(
		fetcher.FromSettings(settings),
		rules,
		application.WithConcurrency(settings.Concurrency),
		application.WithLogger(logger),
	)
	results := svc.Run(cmd.Context(), urls)

	if opts.jsonOutput {
		return renderJSON(cmd.OutOrStdout(), results)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderTable(results, opts.verbose))
	return nil
}

// resolveSettings loads the settings file and environment overrides.
// An explicit --config that does not exist is an error; the default file is optional.
func resolveSettings(cmd *cobra.Command, path string) (domain.Settings, error) {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return domain.Settings{}, &domain.ConfigError{Source: path, Err: err}
		}
	}
	return config.NewSettingsLoader().Load(path)
}

func newLogger(w io.Writer, s domain.Settings) *slog.Logger {
	return shared.InitLogger(w, s.Logging.Format, s.Logging.Level)
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
