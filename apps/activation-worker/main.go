package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	activationservice "github.com/custodia-cloud/tenant-activation/domains/activation/be/service"
	credentialsrepo "github.com/custodia-cloud/tenant-activation/domains/credentials/be/repo"
	tenantsrepo "github.com/custodia-cloud/tenant-activation/domains/tenants/be/repo"
	tenantsservice "github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
	"github.com/custodia-cloud/tenant-activation/platform/go/federation"
	"github.com/custodia-cloud/tenant-activation/platform/go/idp"
	platformlogging "github.com/custodia-cloud/tenant-activation/platform/go/logging"
	"github.com/custodia-cloud/tenant-activation/platform/go/persistence"
	"github.com/custodia-cloud/tenant-activation/platform/go/pipeline"
	"github.com/custodia-cloud/tenant-activation/platform/go/sharing"
)

type config struct {
	Port                  string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL           string        `env:"DATABASE_URL,required"`
	IDPBaseURL            string        `env:"IDP_BASE_URL,required"`
	IDPAdminToken         string        `env:"IDP_ADMIN_TOKEN"`
	SharingBaseURL        string        `env:"SHARING_BASE_URL,required"`
	SharingToken          string        `env:"SHARING_TOKEN"`
	FederationBaseURL     string        `env:"FEDERATION_BASE_URL"`
	FederationToken       string        `env:"FEDERATION_TOKEN"`
	FederatedRegistration bool          `env:"FEDERATED_REGISTRATION" envDefault:"false"`
	RateLimitRPM          int           `env:"RATE_LIMIT_RPM" envDefault:"60"`
}

func main() {
	ctx := context.Background()

	// Local development convenience; ignored when no .env file exists.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "activation-worker",
		Level:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
	if err != nil {
		logger.Fatal("init postgres pool", zap.Error(err))
	}
	defer persistence.ClosePool(pool)

	credentialDir := credentialsrepo.NewPostgresDirectory(pool)
	tenantDir := tenantsrepo.NewPostgresDirectory(pool)

	idpClient := idp.NewClient(cfg.IDPBaseURL, cfg.IDPAdminToken)
	sharingClient := sharing.NewClient(cfg.SharingBaseURL, cfg.SharingToken)

	var registrar activationservice.FederationRegistrar
	if cfg.FederationBaseURL != "" {
		registrar = federation.NewClient(cfg.FederationBaseURL, cfg.FederationToken)
	}
	if cfg.FederatedRegistration && registrar == nil {
		logger.Fatal("FEDERATED_REGISTRATION requires FEDERATION_BASE_URL")
	}

	workflow := activationservice.NewWorkflow(activationservice.Dependencies{
		Credentials:      credentialDir,
		Tenants:          tenantDir,
		IdentityProvider: idpClient,
		AccessControl:    sharingClient,
		Federation:       registrar,
	}, activationservice.WorkflowConfig{
		FederatedRegistration: cfg.FederatedRegistration,
	}, logger)

	// Terminal stage of this worker's pipeline: log the result. A longer
	// pipeline would hand the StatusUpdate to the following stage here.
	next := activationservice.Next(func(ctx context.Context, result tenantsservice.StatusUpdate) error {
		platformlogging.FromContextOr(ctx, logger).Info("activation result forwarded",
			zap.Int64("tenant_id", result.TenantID),
			zap.String("status", string(result.Status)),
			zap.String("updated_by", result.UpdatedBy),
		)
		return nil
	})

	trigger := activationservice.NewTrigger(credentialDir, tenantDir, workflow, next, pipeline.NewLogSink(logger), logger)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(cfg.RequestTimeout))
	router.Use(httprate.LimitByIP(cfg.RateLimitRPM, time.Minute))
	router.Use(platformlogging.RequestLogger(logger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Post("/v1/tenants/{tenantID}/activate", func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantID"), 10, 64)
		if err != nil {
			http.Error(w, "tenant id must be an integer", http.StatusBadRequest)
			return
		}

		// The stage contract has no return value; failures surface through
		// the error sink, so the endpoint only acknowledges acceptance.
		trigger.Invoke(r.Context(), activationservice.StatusChangedEvent{
			TenantID: tenantID,
			Status:   tenantsservice.StatusPending,
		})
		w.WriteHeader(http.StatusAccepted)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("activation worker listening", zap.String("port", cfg.Port))
		serverErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
