package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/HomeQuote/internal/config"
	"github.com/yildizm/HomeQuote/internal/emoji"
	"github.com/yildizm/HomeQuote/internal/estimator"
	"github.com/yildizm/HomeQuote/internal/logger"
	"github.com/yildizm/HomeQuote/internal/monitor"
	"github.com/yildizm/HomeQuote/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	baseURL   string
	themeName string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	globalConfig = nil

	rootCmd := &cobra.Command{
		Use:   "homequote",
		Short: "Real estate price estimates from the terminal",
		Long: `HomeQuote asks a price estimation service what a home is worth.

Run without a subcommand to open the interactive form: pick a location,
enter the number of bedrooms (BHK), bathrooms and the total area in square
feet, then submit to see the estimated price.

The estimate, locations and watch subcommands do the same from scripts.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
		},
		RunE: runForm,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown); defaults to the configured format")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "price service URL, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "form theme (default, high-contrast, minimal)")

	// Add subcommands
	rootCmd.AddCommand(newEstimateCommand())
	rootCmd.AddCommand(newLocationsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "HomeQuote %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// runForm opens the interactive form
func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	applyDisplaySettings(cfg)

	log := newLogger(cfg)
	// the alternate screen owns the terminal, so log lines go to a file or nowhere
	var logOut io.Writer = io.Discard
	if cfg.Output.LogFile != "" {
		f, err := logger.OpenFile(cfg.Output.LogFile)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && isVerbose() {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
			}
		}()
		logOut = f
	}
	log.SetOutput(logOut)

	client, err := newEstimatorClient(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := monitor.NewCollector()
	defer logRequestMetrics(log, collector)

	log.Info("opening form", logger.F("base_url", cfg.API.BaseURL))
	return ui.Run(ctx, monitor.Track(client, collector), ui.Options{Currency: cfg.Output.Currency, Logger: log})
}

// logRequestMetrics writes one line per price service operation used this session
func logRequestMetrics(log *logger.Logger, collector *monitor.Collector) {
	for _, op := range collector.Snapshot().Operations {
		if op.Count == 0 {
			continue
		}
		log.Info("request metrics",
			logger.F("operation", op.Operation),
			logger.Count(int(op.Count)),
			logger.F("errors", op.ErrorCount),
			logger.Duration(op.AvgTime))
	}
}

// GetGlobalConfig loads the configuration once per command and applies
// the global flag overrides on top of it
func GetGlobalConfig() (*config.Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	globalConfig = cfg
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	if outputFmt != "" {
		cfg.Output.DefaultFormat = outputFmt
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if themeName != "" {
		cfg.Output.Theme = themeName
	}
}

// applyDisplaySettings pushes theme and color settings into the form styles
func applyDisplaySettings(cfg *config.Config) {
	ui.SetThemeByName(cfg.Output.Theme)
	ui.SetColorMode(cfg.Output.ColorMode)
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New("main", func() bool { return cfg.Output.Verbose })
}

func newEstimatorClient(cfg *config.Config, log *logger.Logger) (*estimator.Client, error) {
	client, err := estimator.New(&estimator.Config{
		BaseURL:       cfg.API.BaseURL,
		LocationsPath: cfg.API.LocationsPath,
		EstimatePath:  cfg.API.EstimatePath,
		Timeout:       cfg.API.Timeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create price service client: %w", err)
	}
	return client, nil
}

// colorEnabled reports whether text output should carry ANSI colors
func colorEnabled(cfg *config.Config) bool {
	switch cfg.Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return os.Getenv("NO_COLOR") == ""
	}
}

// Global helpers
func isVerbose() bool {
	return verbose
}
