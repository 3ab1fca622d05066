package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/vadimdav12/TestTGBOT/internal/cart"
	"github.com/vadimdav12/TestTGBOT/internal/catalog"
	"github.com/vadimdav12/TestTGBOT/internal/checkout"
	"github.com/vadimdav12/TestTGBOT/internal/config"
	"github.com/vadimdav12/TestTGBOT/internal/discount"
	"github.com/vadimdav12/TestTGBOT/internal/events"
	"github.com/vadimdav12/TestTGBOT/internal/favorites"
	"github.com/vadimdav12/TestTGBOT/internal/httpapi"
	"github.com/vadimdav12/TestTGBOT/internal/mongodb"
	"github.com/vadimdav12/TestTGBOT/internal/notify"
	"github.com/vadimdav12/TestTGBOT/internal/order"
	"github.com/vadimdav12/TestTGBOT/internal/payment"
	"github.com/vadimdav12/TestTGBOT/internal/receipt"
	"github.com/vadimdav12/TestTGBOT/internal/search"
	"github.com/vadimdav12/TestTGBOT/internal/stock"
	"github.com/vadimdav12/TestTGBOT/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	mongoDB, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DB)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Printf("connected to MongoDB at %s", cfg.Mongo.URI)

	orders, err := order.NewPostgresRepository(&cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	if err := orders.RunMigrations(&cfg.Postgres); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Printf("connected to Postgres at %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)

	var cache cart.CartCache = cart.NopCache{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to ping Redis: %v", err)
		}
		cache = cart.NewRedisCache(redisClient)
		log.Printf("connected to Redis at %s", cfg.Redis.Addr)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		log.Printf("publishing order events to %s via %v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}
	defer publisher.Close()

	products := catalog.NewMongoProductRepository(mongoDB)
	ledger := stock.NewMemoryLedger()
	catalogSvc := catalog.NewService(products, ledger)
	if err := catalogSvc.SeedLedger(ctx); err != nil {
		log.Fatalf("failed to seed stock ledger: %v", err)
	}

	cartSvc := cart.NewService(cart.NewMongoRepository(mongoDB), cache, products, ledger)
	engine := discount.NewEngine(discount.NewMongoPromoRepository(mongoDB))
	notifier := notify.NewService(notify.LogSink{}, cfg.Bot.AdminIDs)
	checkoutSvc := checkout.NewService(cartSvc, engine, ledger, orders, notifier, publisher, validation.New())

	receipts, err := receipt.NewPDFGenerator(cfg.Payment.ReceiptsDir)
	if err != nil {
		log.Fatalf("failed to set up receipts: %v", err)
	}
	gateway := payment.NewHTTPGateway(cfg.Payment.GatewayURL, cfg.Payment.Currency, cfg.Payment.GatewayTimeout)
	coordinator := payment.NewCoordinator(orders, gateway, receipts, notifier, publisher)

	router := httpapi.NewRouter(httpapi.Handlers{
		Catalog:   httpapi.NewCatalogHandler(catalogSvc, search.NewService(products), cfg.HTTP.RequestTimeout),
		Cart:      httpapi.NewCartHandler(cartSvc, cfg.HTTP.RequestTimeout),
		Orders:    httpapi.NewOrdersHandler(checkoutSvc, orders, coordinator, cfg.HTTP.RequestTimeout),
		Favorites: httpapi.NewFavoritesHandler(favorites.NewService(favorites.NewMongoRepository(mongoDB), products), cfg.HTTP.RequestTimeout),
		Webhooks:  httpapi.NewWebhookHandler(coordinator, cfg.HTTP.RequestTimeout),
	}, cfg.HTTP.RequestTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		log.Printf("server starting on :%s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
