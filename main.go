package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jayden7895/afyabora-app/config"
	"github.com/Jayden7895/afyabora-app/controllers"
	"github.com/Jayden7895/afyabora-app/database"
	"github.com/Jayden7895/afyabora-app/kafka"
	"github.com/Jayden7895/afyabora-app/logger"
	"github.com/Jayden7895/afyabora-app/middleware"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/repository"
	"github.com/Jayden7895/afyabora-app/routes"
	"github.com/Jayden7895/afyabora-app/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	log := logger.Log

	db, err := database.ConnectPostgres(cfg, log,
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Transaction{},
	)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	orderRepo := repository.NewGormOrderRepository(db)
	txRepo := repository.NewGormTransactionRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	cartRepo := repository.NewRedisCartRepository(redisClient, cfg.CartTTL)

	// Prescription storage: S3 when a bucket is configured, local disk otherwise.
	var storage services.FileStorage
	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			log.Fatal("failed to load AWS config", zap.Error(err))
		}
		storage = services.NewS3FileStorage(awsCfg, cfg.S3Bucket, cfg.S3Region)
		log.Info("prescription uploads stored in S3", zap.String("bucket", cfg.S3Bucket))
	} else {
		local, err := services.NewLocalFileStorage(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal("failed to prepare upload directory", zap.Error(err))
		}
		storage = local
	}

	// Optional order event stream
	var events services.EventPublisher
	var producer *kafka.Producer
	if cfg.KafkaBrokers != "" {
		producer = kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		events = producer
		log.Info("order events enabled", zap.String("topic", cfg.KafkaTopic))
	}

	// Optional SMS confirmations
	var sms services.SMSSender
	if cfg.TwilioEnabled {
		sender, err := services.NewTwilioSender()
		if err != nil {
			log.Warn("twilio config incomplete, SMS disabled", zap.Error(err))
		} else {
			sms = sender
		}
	}

	// Services
	gateway := services.NewMpesaGateway(txRepo, cfg.MpesaCompletionDelay, log)
	poller := services.NewPaymentPoller(gateway, cfg.PaymentPollInterval, cfg.PaymentPollBudget, log)
	checkoutSvc := services.NewCheckoutService(orderRepo, cartRepo, poller, storage, events, sms, cfg.DeliveryFee, log)
	lifecycleSvc := services.NewLifecycleService(orderRepo, events, log)
	orderSvc := services.NewOrderService(orderRepo, log)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	interactionSvc := services.NewInteractionService()

	ctrls := routes.Controllers{
		Auth:        controllers.NewAuthController(userRepo, cfg.JWTSecret, log),
		Product:     controllers.NewProductController(productRepo, log),
		Cart:        controllers.NewCartController(cartSvc, log),
		Checkout:    controllers.NewCheckoutController(checkoutSvc, storage, log),
		Order:       controllers.NewOrderController(lifecycleSvc, orderSvc, userRepo, log),
		Payment:     controllers.NewPaymentController(gateway, log),
		Interaction: controllers.NewInteractionController(interactionSvc),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(cfg.CORSOrigins), middleware.RateLimit())

	routes.Register(router, ctrls, cfg.JWTSecret, cfg.UploadDir)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("AfyaBora API is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	if producer != nil {
		producer.Close()
	}
	log.Info("server shutdown complete")
}
