package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/config"
	"github.com/bryanwahyu/leadscope/internal/logging"
	"github.com/bryanwahyu/leadscope/internal/validate"
)

var (
	// Global flags
	configPath string
	dataPath   string
	sourceKind string
	format     string
	verbose    bool
	timeout    time.Duration

	// research flags
	brief bool

	cfg    *config.Config
	logger *zap.Logger
)

// errCheckFailed makes main exit 1 without printing anything more.
var errCheckFailed = errors.New("health check failed")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "leadscope",
	Short: "Sales-prospecting reports over a company dataset",
	Long: `leadscope reads a company dataset (CSV file, MinIO object or SQL table)
and prints industry, technology and pain-point reports, filtered listings and
pre-call research sheets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		if err := loadConfig(); err != nil {
			return err
		}

		var err error
		logger, err = logging.New(cfg.Log.Level, verbose)
		if err != nil {
			return err
		}
		logger = logger.With(zap.String("run_id", uuid.NewString()))
		logger.Debug("config loaded",
			zap.String("command", cmd.Name()),
			zap.String("source", cfg.Source.Kind))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// loadConfig reads the config file and lets flags override it.
func loadConfig() error {
	path := configPath
	if path == "" {
		path = "config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}
	if sourceKind != "" {
		c.Source.Kind = sourceKind
	}
	if dataPath != "" {
		c.Source.Kind = validate.SourceCSV
		c.Source.Path = dataPath
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := validate.Format(format); err != nil {
		return err
	}
	cfg = c
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default config.yaml, or CONFIG_PATH env)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "CSV dataset path (forces the csv source)")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "Dataset source: csv, minio, mysql, postgres, sqlite")
	rootCmd.PersistentFlags().StringVar(&format, "format", validate.FormatText, "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	researchCmd.Flags().BoolVar(&brief, "brief", false, "Append AI talking points (needs OPENAI_API_KEY)")

	// Add commands to root
	rootCmd.AddCommand(industriesCmd)
	rootCmd.AddCommand(techCmd)
	rootCmd.AddCommand(industryCmd)
	rootCmd.AddCommand(painPointsCmd)
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
