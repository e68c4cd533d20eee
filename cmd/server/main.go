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

	"sentinel-service/config"
	"sentinel-service/internal/api"
	"sentinel-service/internal/broker"
	"sentinel-service/internal/debt"
	"sentinel-service/internal/redisclient"
	"sentinel-service/internal/service"
	"sentinel-service/internal/store"
	"sentinel-service/internal/util"
	"sentinel-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting sentinel service")

	tp, err := util.InitTracer("sentinel-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicLedger)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)
	scheduler := debt.NewScheduler(cfg.Business.FirstDueOffsetDays, cfg.Business.SecondDueOffsetDays)

	orderService := service.NewOrderService(db, redisClient, eventPublisher)
	paymentService := service.NewPaymentService(db, redisClient, eventPublisher)
	inventoryService := service.NewInventoryService(db, redisClient)
	financeService := service.NewFinanceService(db, eventPublisher)
	noteService := service.NewNoteService(db)
	statsService := service.NewStatsService(orderService, redisClient, scheduler,
		time.Duration(cfg.Business.SnapshotTTLSeconds)*time.Second)
	rateService := service.NewRateService(redisClient, cfg.Business.ExchangeRateURL,
		time.Duration(cfg.Business.ExchangeRateTTLSecs)*time.Second)

	ctx := context.Background()
	if err := inventoryService.SyncStockToRedis(ctx); err != nil {
		log.Printf("Failed to sync stock to Redis: %v", err)
	}
	if _, err := statsService.RebuildSnapshot(ctx, "startup"); err != nil {
		log.Printf("Failed to warm dashboard snapshot: %v", err)
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	ledgerConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicLedger, cfg.Kafka.ConsumerGroup)
	dashboardWorker := worker.NewDashboardWorker(ledgerConsumer, statsService)
	go func() {
		if err := dashboardWorker.Start(workerCtx); err != nil {
			log.Printf("Dashboard worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(orderService, paymentService, inventoryService,
		financeService, noteService, statsService, rateService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	dashboardWorker.Stop()

	log.Println("Server exited")
}
