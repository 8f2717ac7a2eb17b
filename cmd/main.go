package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/boardcamp/boardcamp-api/internal/api"
	"github.com/boardcamp/boardcamp-api/internal/config"
	"github.com/boardcamp/boardcamp-api/internal/events"
	"github.com/boardcamp/boardcamp-api/internal/storage"
	"github.com/boardcamp/boardcamp-api/telemetry"

	_ "github.com/boardcamp/boardcamp-api/docs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	log, _ := telemetry.NewLogger()
	defer log.Sync()

	cfg := config.Load()
	telemetry.InitMetrics()

	// handlers with dependencies
	h := &api.Handlers{
		Log: log,
		V:   api.NewValidator(),
	}

	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("postgres connect failed", zap.Error(err))
		}
		if err := pg.RunMigrations(); err != nil {
			log.Fatal("migrations failed", zap.Error(err))
		}
		h.Categories, h.Games, h.Customers, h.Rentals = pg, pg, pg, pg
		h.DBPing = pg.DB.PingContext
		log.Info("using postgres store")
	} else {
		mem := storage.NewMemoryStore()
		h.Categories, h.Games, h.Customers, h.Rentals = mem, mem, mem, mem
		log.Info("no DATABASE_URL set; using in-memory store")
	}

	ctx, cancel := context.WithCancel(context.Background())

	if cfg.KafkaBrokers != "" {
		validator, err := events.NewValidator()
		if err != nil {
			log.Fatal("event schemas failed to compile", zap.Error(err))
		}
		producer := events.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopicRentals)
		defer producer.Close()

		// queue 100, drained by a single dispatcher goroutine
		dispatcher := events.NewDispatcher(log, producer, validator, 100)
		h.Publish = dispatcher.Enqueue
		go dispatcher.Run(ctx)
		log.Info("event publication enabled", zap.String("topic", cfg.KafkaTopicRentals))
	}

	// gin engine
	r := gin.New()
	r.Use(gin.Recovery())

	// request id middleware
	r.Use(func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Set("request_id", reqID)
		c.Next()
	})

	// simple http log middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	})

	r.Use(telemetry.PrometheusMiddleware())

	api.SetupRoutes(r, h)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("addr", srv.Addr))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctxTimeout)
	log.Info("server stopped")
}
