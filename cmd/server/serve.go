package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"storefront/internal/config"
	handler "storefront/internal/controllers/http"
	"storefront/internal/infra"
	"storefront/internal/infra/kafka"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/repository/gormrepo"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func newPublisher(cfg config.EventsConfig) (infra.PublisherInterface, func(), error) {
	switch strings.ToLower(cfg.Broker) {
	case "amqp":
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.Exchange)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case "kafka":
		p, err := kafka.NewProducer(cfg.KafkaBroker, 10)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				log.Printf("kafka producer close: %v", err)
			}
		}, nil
	default:
		return infra.NopPublisher{}, func() {}, nil
	}
}

func newRedis(host string) *redis.Client {
	if host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         host + ":6379",
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

func serve() error {
	cfg, db, err := openDB()
	if err != nil {
		return err
	}

	productRepo := gormrepo.NewProductRepository(db)
	orderRepo := gormrepo.NewOrderRepository(db)

	publisher, closePublisher, err := newPublisher(cfg.Events)
	if err != nil {
		return err
	}
	defer closePublisher()

	gateway := infra.NewRazorpayClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret,
		cfg.Payment.Currency, cfg.Razorpay.Timeout)

	degradations := services.NewDegradations()
	resolver := services.NewProductResolver(productRepo, degradations)

	payments := services.NewPaymentService(gateway, resolver, orderRepo, publisher, degradations, cfg.Payment.Currency)
	payments.SetStrictVerify(cfg.Payment.StrictVerify)

	h := handler.NewHandler(
		services.NewProductService(productRepo, resolver),
		services.NewOrderService(orderRepo, resolver, publisher),
		payments,
		services.NewDashboardService(productRepo, orderRepo, degradations),
		services.NewSeeder(productRepo),
	)

	rdb := newRedis(cfg.Redis.Host)
	if rdb != nil {
		defer rdb.Close()
		resolver.SetRedisClient(rdb)
		degradations.SetRedisClient(rdb)
		h.SetRedisClient(rdb)

		go func() {
			time.Sleep(5 * time.Second)
			if err := resolver.WarmupProductCache(context.Background()); err != nil {
				log.Printf("Failed to warm up cache: %v", err)
			} else {
				log.Println("Cache warmed up successfully")
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	h.RegisterRoutes(r, handler.AdminAuth(cfg.Admin))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Starting storefront on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server run: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("connections closed")
	return nil
}
