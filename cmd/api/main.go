package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jeffy123-zhu/ai-green/internal/application"
	appadvisor "github.com/Jeffy123-zhu/ai-green/internal/application/advisor"
	"github.com/Jeffy123-zhu/ai-green/internal/application/aggregation"
	"github.com/Jeffy123-zhu/ai-green/internal/application/inclusion"
	"github.com/Jeffy123-zhu/ai-green/internal/application/orchestrator"
	"github.com/Jeffy123-zhu/ai-green/internal/config"
	advdomain "github.com/Jeffy123-zhu/ai-green/internal/domain/advisor"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/assessment"
	"github.com/Jeffy123-zhu/ai-green/internal/infra/ai/openai"
	"github.com/Jeffy123-zhu/ai-green/internal/infra/cache"
	mysqlp "github.com/Jeffy123-zhu/ai-green/internal/infra/db/mysql"
	postgresp "github.com/Jeffy123-zhu/ai-green/internal/infra/db/postgres"
	"github.com/Jeffy123-zhu/ai-green/internal/infra/httpserver"
	"github.com/Jeffy123-zhu/ai-green/internal/infra/provider/simulated"
	minioStore "github.com/Jeffy123-zhu/ai-green/internal/infra/storage"
	"github.com/Jeffy123-zhu/ai-green/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	clock := application.SystemClock{}

	// init data sources
	provider := simulated.New(simulated.Options{
		Latency:     cfg.ProviderLatency(),
		FailureRate: cfg.Provider.FailureRate,
		Seed:        cfg.Provider.Seed,
	})
	bundles := cache.New(cfg.CacheTTL(), cfg.Cache.MaxEntries, clock)
	aggregator := &aggregation.Service{
		Provider:     provider,
		Cache:        bundles,
		Clock:        clock,
		FetchTimeout: cfg.FetchTimeout(),
	}

	checkers := map[string]middleware.HealthChecker{
		"data_provider": middleware.CheckFunc(func(ctx context.Context) error {
			_, err := provider.FetchMarket(ctx)
			return err
		}),
	}

	// connect history store
	var (
		history    assessment.Repository
		narratives advdomain.Repository
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		history = mysqlp.NewReportRepository(db)
		narratives = mysqlp.NewNarrativeRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		history = postgresp.NewReportRepository(db)
		narratives = postgresp.NewNarrativeRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	case "", "none":
		log.Println("assessment history disabled: no database configured")
	default:
		log.Fatalf("unknown database driver %q", cfg.Database.Driver)
	}

	// init report archive
	var archive assessment.ReportArchive
	if cfg.Storage.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
			cfg.Storage.Bucket,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// init services
	orch := orchestrator.NewService(
		aggregator,
		&inclusion.Service{Clock: clock},
		history,
		archive,
		clock,
	)

	var advisorSvc *appadvisor.Service
	if cfg.AI.APIKey != "" && history != nil && narratives != nil {
		advisorSvc = &appadvisor.Service{
			Client:  openai.NewClient(cfg.AI.APIKey, cfg.AI.Model),
			Reports: history,
			Repo:    narratives,
			Clock:   clock,
		}
	}

	hub := httpserver.NewHub()

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(
		orch,
		advisorSvc,
		history,
		hub,
		middleware.HealthHandler(checkers),
		cfg.Server.CORSOrigins,
	))

	var handler http.Handler = mux
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = cfg.RateLimit.RPS
		}
		handler = middleware.RateLimitMiddleware(burst, cfg.RateLimit.RPS)(handler)
	}
	if len(cfg.Auth.APIKeys) > 0 {
		handler = middleware.APIKeyAuth(cfg.Auth.APIKeys)(handler)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
