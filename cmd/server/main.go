package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"

	"github.com/Skotchmaster/inventory_cart/internal/config"
	"github.com/Skotchmaster/inventory_cart/internal/events"
	"github.com/Skotchmaster/inventory_cart/internal/httpserver"
	"github.com/Skotchmaster/inventory_cart/internal/repo"
	"github.com/Skotchmaster/inventory_cart/internal/service"
	"github.com/Skotchmaster/inventory_cart/pkg/logging"
	middleware "github.com/Skotchmaster/inventory_cart/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/inventory_cart/pkg/middleware/logging"
)

func main() {
	envFile := pflag.String("env-file", ".env", "env file to load before reading the environment")
	port := pflag.String("port", "", "listen port, overrides SERVER_PORT")
	pflag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		log.Fatalf("env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaProductsTopic, cfg.KafkaFaultsTopic)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	files := repo.NewFileRepo(cfg.ProductsPath, cfg.CartsPath, cfg.SessionPath)

	authSvc := &service.AuthService{
		Sessions:      files.Session,
		Username:      cfg.Username,
		PasswordHash:  cfg.PasswordHash,
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	catalogSvc := &service.CatalogService{Repo: files.Products, Carts: files.Carts, Faults: publisher}
	cartSvc := &service.CartService{Repo: files.Carts}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("1M"))
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Events: publisher},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc, Catalog: catalogSvc},
		Session:        middleware.NewSessionMiddleware(authSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr, "data_files", []string{cfg.ProductsPath, cfg.CartsPath, cfg.SessionPath})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("publisher_close_error", "error", err)
	}

	logger.Info("server_stopped")
}
