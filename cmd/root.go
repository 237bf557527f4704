package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ItsGosho/hydrachain-explorer-requester/config"
	"github.com/ItsGosho/hydrachain-explorer-requester/explorer"
	"github.com/ItsGosho/hydrachain-explorer-requester/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *explorer.Client
	filters *filter.Manager

	version   = "dev"
	buildTime = "unknown"

	// Global flags
	domain   string
	basePath string
	timeout  time.Duration
	retries  int
	noColor  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hydra-explorer",
	Short: "Query the Hydrachain block explorer",
	Long: `hydra-explorer is a read-only client for the Hydrachain explorer API.

It looks up blocks, transactions, addresses, contracts, tokens and chain
statistics, and can walk every page of the paged listings.

Examples:
  hydra-explorer info
  hydra-explorer block 156
  hydra-explorer address txs H7FYCLijimtbYk7gdN1hmweftuWLQni3m5 --all
  hydra-explorer rich-list --all --filter 'amount(balance) > 100000'`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build information reported by version and update
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&domain, "domain", "", "explorer domain, e.g. https://explorer.hydrachain.org")
	flags.StringVar(&basePath, "base-path", "", "API base path, e.g. /7001")
	flags.DurationVar(&timeout, "timeout", 0, "per-request timeout")
	flags.IntVar(&retries, "retries", 0, "retries on connection errors and 5xx responses")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initializeApp initializes the configuration, logger and explorer client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyFlagOverrides(cmd, cfg)

	setupColor(cfg.Logging.Color && !noColor)
	logger = setupLogger(cfg.Logging)

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter in config: %w", err)
	}

	client = newExplorerClient(cfg, logger)

	logger.Debug().
		Stringer("explorer", explorer.NewURLs(cfg.Explorer.Domain, cfg.Explorer.BasePath)).
		Dur("timeout", cfg.HTTP.Timeout).
		Int("retries", cfg.HTTP.Retries).
		Msg("Explorer client ready")

	return nil
}

// applyFlagOverrides lets explicitly passed global flags win over the config file
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("domain") {
		cfg.Explorer.Domain = domain
	}
	if flags.Changed("base-path") {
		cfg.Explorer.BasePath = basePath
	}
	if flags.Changed("timeout") && timeout > 0 {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("retries") && retries >= 0 {
		cfg.HTTP.Retries = retries
	}
}

// newExplorerClient builds the client from the resolved configuration
func newExplorerClient(cfg *config.Config, logger zerolog.Logger) *explorer.Client {
	return explorer.NewClient(logger,
		explorer.WithURLs(explorer.NewURLs(cfg.Explorer.Domain, cfg.Explorer.BasePath)),
		explorer.WithTimeout(cfg.HTTP.Timeout),
		explorer.WithRetries(cfg.HTTP.Retries),
		explorer.WithPoolSize(cfg.HTTP.PoolSize),
		explorer.WithPageSize(cfg.Pagination.PageSize),
		explorer.WithUserAgent(cfg.Explorer.UserAgent),
		explorer.WithResponseHook(func(resp *http.Response) {
			logger.Trace().
				Str("url", resp.Request.URL.String()).
				Int("status", resp.StatusCode).
				Str("content_type", resp.Header.Get("Content-Type")).
				Msg("Explorer response")
		}),
	)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || noColor || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
