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
	"github.com/labstack/echo/v4/middleware"

	"github.com/stitchkart/tailor_shop/internal/config"
	"github.com/stitchkart/tailor_shop/internal/events"
	"github.com/stitchkart/tailor_shop/internal/handlers"
	"github.com/stitchkart/tailor_shop/internal/logging"
	"github.com/stitchkart/tailor_shop/internal/repo"
	"github.com/stitchkart/tailor_shop/internal/search"
	"github.com/stitchkart/tailor_shop/internal/service"
	httpserver "github.com/stitchkart/tailor_shop/internal/transport/http"
	"github.com/stitchkart/tailor_shop/internal/upload"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"))
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	producer := events.NewProducer(configuration.KAFKA_ADDRESS)

	var index *search.Index
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration.ES_URL, configuration.ES_USER, configuration.ES_PASSWORD)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			index = search.NewIndex(esClient, "products")
		}
	}

	uploads, err := upload.NewStore(configuration.UploadDir)
	if err != nil {
		log.Fatalf("upload store init failed: %v", err)
	}

	users := &repo.UserRepository{DB: db}
	businesses := &repo.BusinessRepository{DB: db}
	availability := &repo.AvailabilityRepository{DB: db}
	catalog := &repo.CatalogRepository{DB: db}
	products := &repo.ProductRepository{DB: db}
	orders := &repo.OrderRepository{DB: db}
	addresses := &repo.AddressRepository{DB: db}
	measurements := &repo.MeasurementRepository{DB: db}

	responder := handlers.Responder{Production: configuration.Production()}
	jwtSecret := []byte(configuration.JWT_SECRET)

	deps := httpserver.Deps{
		JWTSecret: jwtSecret,
		UploadDir: configuration.UploadDir,
		AuthHandler: &handlers.AuthHandler{
			Responder: responder,
			Users:     users,
			JWTSecret: jwtSecret,
			TokenTTL:  configuration.TokenTTL,
			Producer:  producer,
		},
		BusinessHandler: &handlers.BusinessHandler{
			Responder:    responder,
			Businesses:   businesses,
			Availability: availability,
			Uploads:      uploads,
		},
		ProductHandler: &handlers.ProductHandler{
			Responder: responder,
			Products:  &service.ProductService{DB: db, Catalog: catalog, Products: products},
			Repo:      products,
			Uploads:   uploads,
			Producer:  producer,
			Index:     index,
		},
		OrderHandler: &handlers.OrderHandler{
			Responder: responder,
			Orders:    &service.OrderService{DB: db, Users: users, Businesses: businesses, Orders: orders},
			Repo:      orders,
			Producer:  producer,
		},
		AddressHandler: &handlers.AddressHandler{
			Responder: responder,
			Addresses: addresses,
			Orders:    orders,
		},
		MeasurementHandler: &handlers.MeasurementHandler{
			Responder:    responder,
			Measurements: &service.MeasurementService{DB: db, Orders: orders, Measurements: measurements},
			Repo:         measurements,
			Producer:     producer,
		},
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
