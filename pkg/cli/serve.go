package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/filemock/internal/cliconfig"
	"github.com/getmockd/filemock/pkg/cli/internal/ports"
	"github.com/getmockd/filemock/pkg/proxy"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	port         int
	fetchTimeout time.Duration
	includeHosts []string
	excludeHosts []string
	includePaths []string
	excludePaths []string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mocking forward proxy (foreground)",
	Long: `Run an HTTP forward proxy that answers requests matching a mock file and
forwards everything else upstream. CONNECT (HTTPS) traffic is tunnelled
without interception.

Point clients at the proxy with HTTP_PROXY=http://localhost:<port>.`,
	Example: `  # Serve mocks from a directory tree
  filemock serve --mocks './mocks/**/*.mock'

  # Same, configured through the environment
  MOCK_PATHS='./mocks/*.mock,./shared/*.mock' filemock serve --port 3128

  # Only intercept one API host
  filemock serve -m './mocks/*.mock' --include-host api.example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, &serveFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().IntVarP(&f.port, "port", "p", cliconfig.DefaultPort, "Proxy listen port")
	serveCmd.Flags().DurationVar(&f.fetchTimeout, "fetch-timeout", cliconfig.DefaultFetchTimeout, "Timeout for @@url upstream fetches")
	serveCmd.Flags().StringSliceVar(&f.includeHosts, "include-host", nil, "Only intercept these host patterns")
	serveCmd.Flags().StringSliceVar(&f.excludeHosts, "exclude-host", nil, "Never intercept these host patterns")
	serveCmd.Flags().StringSliceVar(&f.includePaths, "include-path", nil, "Only intercept these path patterns")
	serveCmd.Flags().StringSliceVar(&f.excludePaths, "exclude-path", nil, "Never intercept these path patterns")
}

func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := loadConfig(cmd, func(flags *cliconfig.Config) {
		fs := cmd.Flags()
		if fs.Changed("port") {
			flags.Port = f.port
		}
		if fs.Changed("fetch-timeout") {
			flags.FetchTimeout = f.fetchTimeout
		}
		if fs.Changed("include-host") {
			flags.IncludeHosts = f.includeHosts
		}
		if fs.Changed("exclude-host") {
			flags.ExcludeHosts = f.excludeHosts
		}
		if fs.Changed("include-path") {
			flags.IncludePaths = f.includePaths
		}
		if fs.Changed("exclude-path") {
			flags.ExcludePaths = f.excludePaths
		}
	})
	if err != nil {
		return err
	}

	if err := ports.Check(cfg.Port); err != nil {
		return err
	}

	scope, err := proxy.CompileScope(proxy.ScopeConfig{
		IncludeHosts: cfg.IncludeHosts,
		ExcludeHosts: cfg.ExcludeHosts,
		IncludePaths: cfg.IncludePaths,
		ExcludePaths: cfg.ExcludePaths,
	})
	if err != nil {
		return fmt.Errorf("invalid interception scope: %w", err)
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	eng := newEngine(cfg, logger)
	p := proxy.New(proxy.Options{
		Interceptor: eng,
		Scope:       scope,
		Logger:      logger,
	})

	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(cfg.Port)))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Port, err)
	}

	server := &http.Server{
		Handler:           p,
		ReadHeaderTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("proxy listening",
		"addr", ln.Addr().String(),
		"mockPaths", eng.Patterns(),
		"configFile", cfg.ConfigFile,
	)

	ctx := commandContext(cmd)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("proxy server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown error", "error", err)
	}

	logger.Info("proxy stopped")
	return nil
}
