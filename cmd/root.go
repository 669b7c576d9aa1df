// ABOUTME: Root command for the newsxstudy CLI
// ABOUTME: Handles global flags, configuration, and launching the TUI

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/newsxstudy/newsxstudy/cli/internal/client"
	"github.com/newsxstudy/newsxstudy/cli/internal/config"
	"github.com/newsxstudy/newsxstudy/cli/internal/logger"
	"github.com/newsxstudy/newsxstudy/cli/internal/session"
	"github.com/newsxstudy/newsxstudy/cli/internal/tui"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	cfgFile    string
	envFile    string
	verbose    bool

	// cfg is populated by initConfig before any command runs
	cfg *config.Config
)

// rootCmd is the base command; without a subcommand it starts the TUI
var rootCmd = &cobra.Command{
	Use:   "newsxstudy",
	Short: "Terminal client for newsxstudy",
	Long: `newsxstudy reads news, keeps bookmarks and runs a study timer
against the newsxstudy backend.

Run without a subcommand to open the interactive interface.

Environment Variables:
  NEWSXSTUDY_API_URL     Backend API URL (default: http://localhost:5000)
  NEWSXSTUDY_PROFILE     local or production
  NEWSXSTUDY_LOG_LEVEL   debug, info, warn, error`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides NEWSXSTUDY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: <config dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// initConfig loads configuration and sets up the stderr logger
func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile, envFile)
	if err != nil {
		return err
	}
	if verbose {
		loaded.LogLevel = "debug"
	}
	cfg = loaded
	logger.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	return nil
}

// currentConfig returns the loaded config or defaults when none was loaded
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		Profile:   config.ProfileLocal,
		Timeout:   client.DefaultTimeout,
		ConfigDir: config.DefaultConfigDir(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// GetAPIURL returns the --api-url flag, else the configured URL. The config
// layer resolves NEWSXSTUDY_API_URL, the config file and the profile default.
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return currentConfig().ResolvedAPIURL()
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds an API client for the resolved backend
func newClient(l *slog.Logger) *client.Client {
	return client.New(GetAPIURL(),
		client.WithTimeout(currentConfig().Timeout),
		client.WithLogger(l),
	)
}

// newSessionStore opens the session kept in the config directory
func newSessionStore() *session.Store {
	return session.New(currentConfig().ConfigDir)
}

// signalContext returns a context canceled on SIGINT/SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// exitWith terminates the process on a non-zero exit code
func exitWith(code int) {
	if code != 0 {
		os.Exit(code)
	}
}

// runTUI starts the full-screen interface, logging to a file instead of stderr
func runTUI() error {
	c := currentConfig()

	logFile, err := logger.OpenFile(c.ConfigDir)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	l := logger.Init(logFile, c.LogLevel, c.LogFormat)
	l.Info("starting tui", "api_url", GetAPIURL())

	return tui.Run(newClient(l), newSessionStore())
}

// printNotice writes a user-facing notice line
func printNotice(w io.Writer, text string) {
	fmt.Fprintln(w, text)
}

// printError writes an error line in the CLI's standard form
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
