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

	"crm-service/config"
	"crm-service/internal/broker"
	"crm-service/internal/graph"
	"crm-service/internal/redisclient"
	"crm-service/internal/service"
	"crm-service/internal/store"
	"crm-service/internal/util"
	"crm-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting CRM service")

	tp, err := util.InitTracer("crm-service", cfg.Observ.JaegerEndpoint)
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
		log.Printf("Redis unavailable, job locks disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis connected")
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	customerService := service.NewCustomerService(db, eventPublisher)
	productService := service.NewProductService(db, eventPublisher,
		cfg.Business.LowStockThreshold, cfg.Business.RestockAmount)
	orderService := service.NewOrderService(db, eventPublisher)

	resolver := &graph.Resolver{
		Customers: customerService,
		Products:  productService,
		Orders:    orderService,
	}
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	heartbeat := worker.NewHeartbeatWorker(cfg.Jobs.GraphQLEndpoint, cfg.Jobs.HeartbeatLog,
		cfg.Jobs.HeartbeatInterval, redisClient)
	report := worker.NewReportWorker(cfg.Jobs.GraphQLEndpoint, cfg.Jobs.ReportLog,
		cfg.Jobs.ReportInterval, redisClient)
	reminders := worker.NewReminderWorker(cfg.Jobs.GraphQLEndpoint, cfg.Jobs.ReminderLog,
		cfg.Jobs.ReminderInterval, cfg.Jobs.ReminderWindow, redisClient)
	restock := worker.NewRestockWorker(cfg.Jobs.GraphQLEndpoint, cfg.Jobs.RestockLog,
		cfg.Jobs.RestockInterval, redisClient)

	for _, w := range []interface {
		Start(context.Context) error
	}{heartbeat, report, reminders, restock} {
		w := w
		go func() {
			if err := w.Start(workerCtx); err != nil && err != context.Canceled {
				log.Printf("Worker error: %v", err)
			}
		}()
	}

	eventConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
	eventLog := worker.NewEventLogWorker(eventConsumer)
	go func() {
		if err := eventLog.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Event log worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := graph.NewHandler(schema)
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
	eventLog.Stop()

	log.Println("Server exited")
}
