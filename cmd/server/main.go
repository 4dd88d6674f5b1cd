package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/splitnest/splitnest/internal/auth"
	"github.com/splitnest/splitnest/internal/config"
	"github.com/splitnest/splitnest/internal/events"
	"github.com/splitnest/splitnest/internal/ledger"
	"github.com/splitnest/splitnest/internal/middleware"
	"github.com/splitnest/splitnest/internal/report"
	"github.com/splitnest/splitnest/internal/service"
	"github.com/splitnest/splitnest/internal/storage/sqlite"
	"github.com/splitnest/splitnest/pkg/api"
	"github.com/splitnest/splitnest/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.SQLiteDBPath)

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("Event publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	// Register and Login are public; OptionalAuth still resolves the
	// caller's identity for GetUser when a token is sent.
	baseInterceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
		middleware.OptionalAuth(jwtManager),
	)
	authedInterceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager),
	)

	mux := http.NewServeMux()

	authSvc := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	authPath, authHandler := api.NewAuthServiceHandler(authSvc, baseInterceptors)
	mux.Handle(authPath, authHandler)

	expenseSvc := service.NewExpenseService(ledger.New(store), publisher, report.TextSink{}, slog.Default())
	expensePath, expenseHandler := api.NewExpenseServiceHandler(expenseSvc, authedInterceptors)
	mux.Handle(expensePath, expenseHandler)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(corsMiddleware(mux), &http2.Server{})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        h2cHandler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
