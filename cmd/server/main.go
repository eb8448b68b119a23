// Package main starts the AccountKeeper loopback API, setting up
// configuration, logging, repositories, the session service and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/AccountKeeper/internal/config"
	"github.com/atinyakov/AccountKeeper/internal/logger"
	"github.com/atinyakov/AccountKeeper/internal/machinecode"
	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/atinyakov/AccountKeeper/internal/repository"
	"github.com/atinyakov/AccountKeeper/internal/server/handler/http"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"go.uber.org/zap"
)

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 5 * time.Second

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, environment and file configuration.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	// Resolve the data directory once; the account file lives there.
	accountsPath, err := options.EnsureDataDir()
	if err != nil {
		zapLogger.Fatal("cannot prepare data directory", zap.Error(err))
	}

	// Initialize repositories and the session.
	accountRepo := repository.NewAccountRepository(accountsPath, zapLogger)
	session := service.NewSession(accountRepo,
		repository.NewServerFile(zapLogger),
		repository.NewRuleFile(zapLogger),
		zapLogger,
	)
	if err := session.LoadAccounts(); err != nil {
		zapLogger.Fatal("cannot load accounts", zap.String("path", accountsPath), zap.Error(err))
	}
	openConfiguredFiles(session, options, zapLogger)

	// Build the router.
	router := http.NewRouter(
		&http.AccountHandler{Service: session},
		&http.MCPHandler{Service: session},
		&http.RuleHandler{Service: session},
		&http.IntegrationHandler{
			Remote:  remote.NewClient(),
			Backup:  machinecode.Backup,
			Restore: machinecode.Restore,
		},
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", options.Addr)
	if err != nil {
		zapLogger.Fatal("cannot listen", zap.String("addr", options.Addr), zap.Error(err))
	}
	zapLogger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()), zap.String("accounts", accountsPath))
	if err := serve(ctx, server, ln, zapLogger); err != nil {
		zapLogger.Fatal("HTTP server failed", zap.Error(err))
	}
}

// serve runs server on ln until ctx is cancelled, then returns only after
// Shutdown has let in-flight requests finish.
func serve(ctx context.Context, server *nethttp.Server, ln net.Listener, log *zap.Logger) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("HTTP server stopped")
	return nil
}

// openConfiguredFiles opens the MCP and rules files named in the config.
// Failures are logged; the session then starts with empty lists.
func openConfiguredFiles(session *service.Session, options *config.Options, log *zap.Logger) {
	if options.MCPConfigPath != "" {
		if err := session.OpenServers(options.MCPConfigPath); err != nil {
			log.Warn("cannot open MCP file", zap.Error(err))
		}
	}
	if options.RulesConfigPath != "" {
		if err := session.OpenRules(options.RulesConfigPath); err != nil {
			log.Warn("cannot open rules file", zap.Error(err))
		}
	}
}
