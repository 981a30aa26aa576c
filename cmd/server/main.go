package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davitkhm/docvault/internal/config"
	"github.com/davitkhm/docvault/internal/events"
	"github.com/davitkhm/docvault/internal/httpserver"
	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/middleware"
	"github.com/davitkhm/docvault/internal/repo"
	"github.com/davitkhm/docvault/internal/search"
	"github.com/davitkhm/docvault/internal/service"
	"github.com/davitkhm/docvault/internal/storage"
	"github.com/davitkhm/docvault/internal/tokens"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	codec := tokens.NewCodec(cfg.JWTSecret)
	guard := service.NewRevocationGuard(gormRepo)

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
		publisher = producer
	} else {
		logger.Warn("kafka brokers not configured, events disabled")
	}

	var store service.ObjectStore
	if cfg.S3_BUCKET != "" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.Config{
			Endpoint: cfg.S3_ENDPOINT,
			Key:      cfg.S3_KEY,
			Secret:   cfg.S3_SECRET,
			Region:   cfg.S3_REGION,
			Bucket:   cfg.S3_BUCKET,
		})
		if err != nil {
			log.Fatalf("s3 init error: %v", err)
		}
		store = s3Store
	} else {
		logger.Warn("object storage not configured, uploads disabled")
	}

	var index *search.DocumentIndex
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		index = search.NewDocumentIndex(esClient, cfg.ES_INDEX)
	} else {
		logger.Warn("elasticsearch not configured, document search disabled")
	}

	authSvc := &service.AuthService{Repo: gormRepo, Codec: codec, Events: publisher}
	docSvc := &service.DocumentService{Repo: gormRepo, Store: store, Events: publisher}
	helloSvc := &service.HelloService{Repo: gormRepo}

	docHTTP := &httpserver.DocumentHTTP{Svc: docSvc}
	if index != nil {
		docSvc.Index = index
		docHTTP.Searcher = index
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Svc: authSvc},
		Documents: docHTTP,
		Hello:     &httpserver.HelloHTTP{Svc: helloSvc},
		Gate:      middleware.NewAuthGate(codec, guard),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
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
