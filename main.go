package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyagelab/travel-backend/config"
	"github.com/voyagelab/travel-backend/controllers"
	"github.com/voyagelab/travel-backend/database"
	"github.com/voyagelab/travel-backend/kafka"
	"github.com/voyagelab/travel-backend/logger"
	"github.com/voyagelab/travel-backend/middleware"
	"github.com/voyagelab/travel-backend/repository"
	"github.com/voyagelab/travel-backend/routes"
	"github.com/voyagelab/travel-backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}
	if cfg.SeedOnStart {
		if err := database.SeedCatalog(db); err != nil {
			logger.Log.Fatal("catalog seed failed", zap.Error(err))
		}
	}

	repos := repository.NewRepositories(db)
	uow := repository.NewGormUnitOfWork(db)

	// Redis and Kafka are optional in local setups; checkout still enforces
	// its invariants without them.
	var idem services.IdempotencyStore
	if cfg.RedisAddr != "" {
		redisClient, err := database.NewRedisClient(context.Background(), cfg)
		if err != nil {
			logger.Log.Fatal("redis connection failed", zap.Error(err))
		}
		idem = database.NewCheckoutIdemStore(redisClient, 24*time.Hour)
	}

	var publisher services.OrderEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		defer producer.Close()
		publisher = producer
	}

	cartService := services.NewCartService(repos.Carts, repos.Catalog, repos.Trips)
	tripService := services.NewTripService(repos.Trips, repos.Catalog)
	checkoutService := services.NewCheckoutService(uow, repos.Orders, idem, publisher, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit())

	routes.Register(r, &routes.Controllers{
		Catalog:  controllers.NewCatalogController(repos.Catalog),
		Cart:     controllers.NewCartController(cartService),
		Trip:     controllers.NewTripController(tripService),
		Checkout: controllers.NewCheckoutController(checkoutService),
		Order:    controllers.NewOrderController(repos.Orders),
	}, cfg.JWTSecret)

	logger.Log.Info("starting travel-backend", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}
