// ABOUTME: Root command for the jobdash CLI
// ABOUTME: Handles global flags and configuration, and launches the TUI with no subcommand

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/config"
	"github.com/markalston/jobdash/internal/logger"
	"github.com/markalston/jobdash/internal/session"
	"github.com/markalston/jobdash/internal/tui"
	"github.com/markalston/jobdash/internal/tui/recentlogins"
	"github.com/markalston/jobdash/internal/tui/styles"
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
	darkMode   bool
	noPersist  bool
)

// Exit codes shared by every subcommand
const (
	exitOK      = 0
	exitInvalid = 1 // bad input or no session
	exitBackend = 2 // connectivity or backend error
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "jobdash",
	Short: "Terminal dashboard for tracking job applications",
	Long: `jobdash is a terminal client for the job tracker backend.

Run without arguments to open the interactive dashboard. Subcommands
cover the same operations for scripting.

Environment Variables:
  JOBDASH_API_URL     Backend API URL (default: http://localhost:8080)
  JOBDASH_CONFIG_DIR  Directory for session, config.yaml and debug.log
  LOG_LEVEL           debug, info, warn, error (default: info)
  LOG_FORMAT          text or json (default: text)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Flags().Changed("dark"))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides JOBDASH_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory for local state (overrides JOBDASH_CONFIG_DIR)")
	rootCmd.Flags().BoolVar(&darkMode, "dark", false, "Start the dashboard in dark mode")
	rootCmd.Flags().BoolVar(&noPersist, "no-persist", false, "Keep the session in memory only")
}

// loadConfig reads configuration and applies the global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadDir(configDir)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	return cfg, nil
}

// GetAPIURL returns the API URL from flag, env, config file, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return strings.TrimRight(apiURL, "/")
	}
	cfg, err := config.LoadDir(configDir)
	if err != nil {
		slog.Warn("Ignoring invalid configuration", "error", err)
		return config.DefaultAPIURL
	}
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds a gateway backed by the on-disk session
func newClient() (*client.Client, *session.FileStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	c, store := clientFor(cfg)
	return c, store, nil
}

func clientFor(cfg *config.Config) (*client.Client, *session.FileStore) {
	store := session.NewFileStore(cfg.ConfigDir)
	return client.New(cfg.APIURL, store), store
}

// runCommand wires signal cancellation and exit codes around a runX helper
func runCommand(fn func(ctx context.Context, w io.Writer, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger.Init(cliLogOptions())

		exitCode := fn(ctx, cmd.OutOrStdout(), args)
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	}
}

// cliLogOptions sends subcommand logs to stderr at the configured level and
// format. An unreadable config leaves the LOG_LEVEL/LOG_FORMAT fallback.
func cliLogOptions() logger.Options {
	opts := logger.Options{Output: os.Stderr}
	cfg, err := loadConfig()
	if err != nil {
		return opts
	}
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	return opts
}

// requireSession returns a client when a token is stored
func requireSession(w io.Writer) (*client.Client, *session.FileStore, int) {
	c, store, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, nil, exitInvalid
	}
	if !store.Authenticated() {
		fmt.Fprintln(w, "Not logged in. Run 'jobdash login' first.")
		return nil, nil, exitInvalid
	}
	return c, store, exitOK
}

// backendError prints err and maps it to an exit code
func backendError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	if client.IsUnauthorized(err) {
		fmt.Fprintln(w, "Session rejected by the backend. Run 'jobdash login' again.")
	}
	return exitBackend
}

func printJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}

// runTUI opens the interactive dashboard. Logs go to debug.log so they
// never draw over the screen.
func runTUI(darkFlagSet bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := logger.OpenDebugLog(cfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer logFile.Close()
	logger.Init(logger.Options{Output: logFile, Level: cfg.LogLevel, Format: cfg.LogFormat})

	dark := cfg.Dark
	if darkFlagSet {
		dark = darkMode
	}

	var store session.Store = session.NewFileStore(cfg.ConfigDir)
	if noPersist {
		store = session.NewMemoryStore("")
	}
	slog.Info("Starting dashboard", "api", cfg.APIURL, "authenticated", store.Authenticated())

	return tui.Run(tui.Options{
		Client:  client.New(cfg.APIURL, store),
		Session: store,
		Theme:   styles.NewTheme(dark),
		Recent:  recentlogins.New(cfg.ConfigDir),
	})
}
