package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/securebank/portal/internal/audit"
	"github.com/securebank/portal/internal/config"
	"github.com/securebank/portal/internal/db"
	"github.com/securebank/portal/internal/httpserver"
	"github.com/securebank/portal/internal/logging"
	"github.com/securebank/portal/internal/ratelimit"
	"github.com/securebank/portal/internal/repo"
	"github.com/securebank/portal/internal/search"
	"github.com/securebank/portal/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL, cfg.SQLitePath)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if cfg.SeedAccounts {
		if err := db.SeedAccounts(database); err != nil {
			log.Fatalf("seed accounts: %v", err)
		}
	}

	gormRepo := &repo.GormRepo{DB: database}

	var publisher audit.Publisher = audit.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		logger.Info("audit publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.AuditTopic)
	}
	defer publisher.Close()

	customerSvc := &service.CustomerService{Repo: gormRepo, CustomerIndex: cfg.CustomerIndex}
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		customerSvc.ES = esClient
		logger.Info("customer search backed by elasticsearch", "index", cfg.CustomerIndex)
	}

	authSvc := &service.AuthService{
		Repo:          gormRepo,
		Limiter:       ratelimit.New(ratelimit.DefaultMaxAttempts, ratelimit.DefaultWindow),
		Audit:         publisher,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
	}

	httpserver.Register(e, &httpserver.Deps{
		Auth:           authSvc,
		Customers:      customerSvc,
		Orders:         &service.OrderService{Repo: gormRepo},
		Repo:           gormRepo,
		SignInPath:     cfg.SignInPath,
		DefaultLanding: cfg.DefaultLanding,
		Logger:         logger,
	})

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
