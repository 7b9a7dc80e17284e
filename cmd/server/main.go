package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/book_service/internal/blocklist"
	"github.com/Skotchmaster/book_service/internal/config"
	"github.com/Skotchmaster/book_service/internal/es"
	"github.com/Skotchmaster/book_service/internal/httpserver"
	"github.com/Skotchmaster/book_service/internal/logging"
	authmw "github.com/Skotchmaster/book_service/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/book_service/internal/middleware/logging"
	"github.com/Skotchmaster/book_service/internal/mykafka"
	"github.com/Skotchmaster/book_service/internal/repo"
	"github.com/Skotchmaster/book_service/internal/service"
	"github.com/Skotchmaster/book_service/internal/tokens"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "book_service")
	slog.SetDefault(logger)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	rdb := config.NewRedis(cfg)
	producer := mykafka.NewProducer([]string{cfg.KafkaAddress})

	var esHandler httpserver.SearchHTTP
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		esHandler.ES = client
	} else {
		logger.Warn("es_disabled", "reason", "ES_URL is not set")
	}

	codec := tokens.NewCodec([]byte(cfg.JWTSecret), cfg.JWTAlgorithm)
	bl := blocklist.NewRedisBlocklist(rdb)

	r := repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: r, Codec: codec, Blocklist: bl}
	bookSvc := &service.BookService{Repo: r}
	reviewSvc := &service.ReviewService{Repo: r}
	tagSvc := &service.TagService{Repo: r}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:   &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		BookHandler:   &httpserver.BookHTTP{Svc: bookSvc, Producer: producer},
		ReviewHandler: &httpserver.ReviewHTTP{Svc: reviewSvc, Producer: producer},
		TagHandler:    &httpserver.TagHTTP{Svc: tagSvc},
		SearchHandler: &esHandler,
		Guard:         authmw.NewTokenGuard(codec, bl),
		BookSvc:       bookSvc,
		ReviewSvc:     reviewSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("book_service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		logger.Warn("kafka_close_failed", "error", err)
	}
	_ = rdb.Close()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("book_service stopped")
}
