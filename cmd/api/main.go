package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verakita/verakita-api/internal/config"
	"github.com/verakita/verakita-api/internal/db"
	"github.com/verakita/verakita-api/internal/handlers"
	"github.com/verakita/verakita-api/internal/health"
	"github.com/verakita/verakita-api/internal/logging"
	"github.com/verakita/verakita-api/internal/middleware"
	"github.com/verakita/verakita-api/internal/mockdata"
	"github.com/verakita/verakita-api/internal/repo"
	"github.com/verakita/verakita-api/internal/reviews"
	"github.com/verakita/verakita-api/internal/sui"
	"github.com/verakita/verakita-api/internal/walrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.LogFormat, cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	if cfg.Store == config.StorePostgres {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL(), db.Options{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return err
		}
		defer database.Close()
		if err := db.Run(cfg.DatabaseURL()); err != nil {
			return err
		}
		logger.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)
	}

	deps := buildDependencies(cfg, database, logger)

	if cfg.ProbeSchedule != "" {
		c, err := health.Schedule(ctx, cfg.ProbeSchedule, deps.monitor)
		if err != nil {
			return err
		}
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"port", cfg.Port,
			"env", cfg.Env,
			"store", cfg.Store,
			"sui_network", cfg.SuiNetwork,
			"tls", cfg.TLSEnabled())
		if cfg.TLSEnabled() {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// dependencies are the stores and clients the routes share.
type dependencies struct {
	db      *sql.DB
	logger  *slog.Logger
	logs    handlers.LogStore
	keys    handlers.APIKeyStore
	walrus  *walrus.Client
	sui     *sui.Client
	reviews *reviews.Service
	monitor *health.Monitor
}

// buildDependencies wires stores and clients from cfg. A nil database selects
// the seeded in-memory stores.
func buildDependencies(cfg config.Config, database *sql.DB, logger *slog.Logger) dependencies {
	d := dependencies{
		db:     database,
		logger: logger,
		walrus: walrus.NewClient(cfg.WalrusPublisherURL, cfg.WalrusAggregatorURL, logger),
		sui:    sui.NewClient(cfg.SuiRPCURL, logger),
	}
	if database != nil {
		d.logs = repo.NewLogRepo(database)
		d.keys = repo.NewAPIKeyRepo(database)
	} else {
		d.logs = repo.NewMemoryLogRepo(mockdata.SystemLogs())
		d.keys = repo.NewMemoryAPIKeyRepo(mockdata.AdminAPIKeys())
	}

	d.reviews = &reviews.Service{Log: logger}
	if cfg.EnableWalrus {
		d.reviews.Blobs = d.walrus
	}
	if cfg.EnableBlockchain {
		d.reviews.Chain = d.sui
		d.reviews.Registry = d.sui
		d.reviews.RegistryID = cfg.ReviewRegistryID
	}

	d.monitor = health.NewMonitor(d.sui, d.walrus, d.logs, logger)
	return d
}

func newRouter(cfg config.Config, d dependencies) http.Handler {
	secret := []byte(cfg.JWTSecret)

	reviewH := &handlers.ReviewHandler{Service: d.reviews, Log: d.logger}
	profileH := &handlers.ProfileHandler{}
	suiH := &handlers.SuiHandler{Chain: d.sui, Network: cfg.SuiNetwork, Log: d.logger}
	walrusH := &handlers.WalrusHandler{Store: d.walrus, Log: d.logger}
	dashboardH := &handlers.DashboardHandler{}
	marketH := &handlers.MarketplaceHandler{}
	adminH := &handlers.AdminHandler{
		Logs:   d.logs,
		Keys:   d.keys,
		Health: d.monitor,
		Config: cfg,
		Log:    d.logger,
	}

	// Load has already validated the proxy list.
	proxies, _ := cfg.TrustedProxyPrefixes()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(proxies))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog(d.logger))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.JSONSuccess(w, map[string]string{"status": "ok"})
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if d.db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := d.db.PingContext(ctx); err != nil {
				handlers.JSONError(w, "Database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		handlers.JSONSuccess(w, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.Handler())

	bodyLimit := middleware.MaxBytes(middleware.DefaultMaxBodyBytes)
	uploadLimiter := middleware.UploadRateLimiter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewH.List)
			r.With(bodyLimit).Post("/", reviewH.Create)
			r.Get("/stats", reviewH.Stats)
			r.Get("/{id}", reviewH.Get)
			r.Delete("/{id}", reviewH.Delete)
			r.Get("/{id}/verify", reviewH.Verify)
		})

		r.Route("/user/profile", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(secret))
			r.Get("/", profileH.Get)
			r.With(bodyLimit).Patch("/", profileH.Update)
		})

		r.Route("/sui", func(r chi.Router) {
			r.With(bodyLimit).Post("/transaction", suiH.Transaction)
			r.Get("/epoch", suiH.Epoch)
			r.Get("/balance/{address}", suiH.Balance)
			r.Get("/objects/{address}", suiH.Objects)
		})

		r.Route("/walrus", func(r chi.Router) {
			r.With(uploadLimiter.Middleware, middleware.MaxBytes(cfg.WalrusMaxUploadBytes)).
				Post("/upload", walrusH.Upload)
			r.Get("/{blobId}", walrusH.Fetch)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/overview", dashboardH.Overview)
			r.Get("/reviews", dashboardH.Reviews)
			r.Get("/api-keys", dashboardH.APIKeys)
			r.Get("/integrations", dashboardH.Integrations)
			r.Get("/analytics", dashboardH.Analytics)
		})

		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/products", marketH.Products)
			r.Get("/products/{id}", marketH.Product)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(secret))
			r.Get("/overview", adminH.Overview)
			r.Get("/settings", adminH.Settings)
			r.Get("/logs", adminH.ListLogs)
			r.Get("/api-keys", adminH.ListKeys)
			r.With(bodyLimit).Post("/api-keys", adminH.CreateKey)
			r.Delete("/api-keys/{id}", adminH.RevokeKey)
		})
	})

	return r
}
