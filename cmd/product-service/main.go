package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/product-api/internal/auth"
	"github.com/prudhivi99/product-api/internal/cache"
	"github.com/prudhivi99/product-api/internal/config"
	"github.com/prudhivi99/product-api/internal/db"
	"github.com/prudhivi99/product-api/internal/discovery"
	"github.com/prudhivi99/product-api/internal/handlers"
	"github.com/prudhivi99/product-api/internal/messaging"
	"github.com/prudhivi99/product-api/internal/middleware"
	"github.com/prudhivi99/product-api/internal/publisher"
)

const (
	serviceName = "product-service"
	serviceID   = "product-service-1"
)

func main() {
	cfg := config.Load()

	// Connect to MongoDB
	database, err := db.NewMongoDB(cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Connect to Redis
	tokenCache, err := cache.NewTokenCache(cfg.RedisHost, cfg.RedisPort, cfg.JWTExpiry)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer tokenCache.Close()

	// Connect to RabbitMQ (optional)
	var stockPublisher handlers.StockEventPublisher
	if cfg.RabbitMQHost != "" {
		rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQHost, cfg.RabbitMQPort, cfg.RabbitMQUser, cfg.RabbitMQPassword)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitMQ.Close()

		stockPublisher, err = publisher.NewStockPublisher(rabbitMQ)
		if err != nil {
			log.Fatalf("Failed to create publisher: %v", err)
		}
	}

	// Register with Consul (optional)
	if cfg.ConsulHost != "" {
		consul, err := discovery.NewConsulClient(cfg.ConsulHost, cfg.ConsulPort)
		if err != nil {
			log.Fatalf("Failed to connect to Consul: %v", err)
		}

		err = consul.Register(discovery.ServiceConfig{
			Name: serviceName,
			ID:   serviceID,
			Port: cfg.Port,
			Tags: []string{"api", "products"},
		})
		if err != nil {
			log.Fatalf("Failed to register service: %v", err)
		}

		// Deregister on shutdown
		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			log.Println("Shutting down...")
			consul.Deregister(serviceID)
			os.Exit(0)
		}()
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	productRepo := db.NewProductRepository(database)
	productHandler := handlers.NewProductHandler(productRepo, stockPublisher)

	guard := func(roles ...string) gin.HandlerFunc {
		return middleware.RequireRoles(jwtService, tokenCache, roles...)
	}
	router := handlers.NewRouter(productHandler, guard)

	log.Printf("🚀 %s starting on http://localhost:%d", serviceName, cfg.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
