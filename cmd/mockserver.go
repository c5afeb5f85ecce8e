// ABOUTME: mock-server command serving the stub job tracker backend
// ABOUTME: In-memory store seeded with the demo account, request logs on stdout

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/markalston/jobdash/internal/config"
	"github.com/markalston/jobdash/internal/logger"
	"github.com/markalston/jobdash/internal/mockapi"
)

var mockFlags struct {
	port       string
	seed       bool
	loginLimit int
	writeLimit int
	tokenTTL   time.Duration
}

const shutdownTimeout = 5 * time.Second

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run the stub backend locally",
	Long: `Serve the job tracker REST API from memory. The demo account
demo@example.com / password is seeded unless --seed=false.

Environment Variables:
  JOBDASH_MOCK_PORT          Listen port (default: 8080)
  JOBDASH_MOCK_CORS_ORIGINS  Comma-separated allowed origins (default: any)`,
	Args: cobra.NoArgs,
	Run: runCommand(func(ctx context.Context, w io.Writer, _ []string) int {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitInvalid
		}
		logger.Init(logger.Options{Output: os.Stdout, Level: cfg.LogLevel, Format: cfg.LogFormat})

		port := cfg.MockPort
		if mockFlags.port != "" {
			port = mockFlags.port
		}
		return runMockServer(ctx, w, ":"+port, mockapi.Options{
			SeedDemo:    mockFlags.seed,
			LoginLimit:  mockFlags.loginLimit,
			WriteLimit:  mockFlags.writeLimit,
			TokenTTL:    mockFlags.tokenTTL,
			CORSOrigins: cfg.MockCORSOrigins,
		})
	}),
}

func init() {
	mockServerCmd.Flags().StringVar(&mockFlags.port, "port", "", "Listen port (overrides JOBDASH_MOCK_PORT, default "+config.DefaultMockPort+")")
	mockServerCmd.Flags().BoolVar(&mockFlags.seed, "seed", true, "Seed the demo account")
	mockServerCmd.Flags().IntVar(&mockFlags.loginLimit, "login-limit", 10, "Auth requests per minute per client (0 disables)")
	mockServerCmd.Flags().IntVar(&mockFlags.writeLimit, "write-limit", 60, "Job and message creates per minute per user (0 disables)")
	mockServerCmd.Flags().DurationVar(&mockFlags.tokenTTL, "token-ttl", 24*time.Hour, "Token lifetime (0 never expires)")
	rootCmd.AddCommand(mockServerCmd)
}

// runMockServer serves until ctx is canceled and returns exit code
func runMockServer(ctx context.Context, w io.Writer, addr string, opts mockapi.Options) int {
	srv, err := mockapi.New(opts)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitInvalid
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitBackend
	}

	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	slog.Info("Mock API listening", "addr", ln.Addr().String(), "seeded", opts.SeedDemo)
	fmt.Fprintf(w, "Mock API listening on http://%s\n", ln.Addr().String())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return exitBackend
		}
		return exitOK
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
		return exitBackend
	}
	slog.Info("Mock API stopped")
	return exitOK
}
