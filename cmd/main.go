package main

//
//  @title           stockdash API
//  @version         1.0
//  @description     Daily stock dashboard: clipped OHLCV series, descriptive statistics, moving average, returns and dividend investment sizing.
//  @termsOfService  https://github.com/guttosm/stockdash
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockdash
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Stock dashboard and price series
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/stockdash/config"
	_ "github.com/guttosm/stockdash/docs" // swagger docs
	"github.com/guttosm/stockdash/internal/api"
	"github.com/guttosm/stockdash/internal/app"
	"github.com/guttosm/stockdash/internal/logger"
)

// options holds the parsed command line.
type options struct {
	mode  string
	port  string
	query api.DashboardQuery
}

// parseFlags parses args (without the program name). Dashboard flags default
// to the configured dashboard defaults.
func parseFlags(args []string, cfg config.Config, errOut io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("stockdash", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&o.mode, "mode", "api", "Mode: api or report")
	fs.StringVar(&o.port, "port", cfg.Server.Port, "Port for API mode")
	fs.StringVar(&o.query.Ticker, "ticker", cfg.Dashboard.DefaultTicker, "Ticker symbol for report mode")
	fs.StringVar(&o.query.Start, "start", cfg.Dashboard.DefaultStart, "First day (YYYY-MM-DD) for report mode")
	fs.StringVar(&o.query.End, "end", cfg.Dashboard.DefaultEnd, "Last day (YYYY-MM-DD) for report mode")
	fs.StringVar(&o.query.Income, "income", cfg.Dashboard.DefaultIncome, "Target annual dividend income for report mode")
	fs.IntVar(&o.query.Window, "window", cfg.Dashboard.MovingAverageWindow, "Moving average window in trading days for report mode")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the stockdash application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the HTTP server with the dashboard page and the JSON API.
//   - report: Prints one dashboard as JSON to stdout and exits.
//
// Flags:
//   - --mode: Execution mode ("api" or "report"). Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --ticker, --start, --end, --income, --window: report inputs, defaulting to DASHBOARD_DEFAULT_*.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	opts, err := parseFlags(os.Args[1:], config.AppConfig, os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	switch opts.mode {
	case "report":
		ctx, cancel := context.WithTimeout(ctx, config.AppConfig.Server.RequestTimeout)
		defer cancel()

		if err := app.RunReport(ctx, os.Stdout, opts.query); err != nil {
			logger.L().Fatal().Err(err).Str("ticker", opts.query.Ticker).Msg("report failed")
		}

	case "api":
		logger.L().Info().Str("provider", config.AppConfig.MarketData.Provider).Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, opts.port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", opts.mode).Msg("unknown mode")
	}
}
