package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fixhub/config"
	"fixhub/cron"
	"fixhub/database"
	accountRepo "fixhub/database/repository/account"
	"fixhub/database/repository/memory"
	requestRepo "fixhub/database/repository/request"
	reviewRepo "fixhub/database/repository/review"
	transactionRepo "fixhub/database/repository/transaction"
	"fixhub/handlers"
	"fixhub/routes"
	"fixhub/services/account"
	"fixhub/services/matching"
	"fixhub/services/notification"
	"fixhub/services/pricing"
	"fixhub/services/request"
	"fixhub/services/review"
	"fixhub/services/wallet"
	"fixhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	engine := config.LoadEngine()

	stripe.Key = config.AppConfig.StripeKey

	// Repositories. Without a DATABASE_URL the in-memory store backs
	// everything, which is enough for local development.
	var (
		requests requestRepo.RequestRepository
		accounts accountRepo.AccountRepository
		ledger   transactionRepo.TransactionRepository
		reviews  reviewRepo.ReviewRepository
	)
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		mongoRequests := requestRepo.NewMongoRequestRepo()
		mongoAccounts := accountRepo.NewMongoAccountRepo()
		requests = mongoRequests
		accounts = mongoAccounts
		ledger = transactionRepo.NewMongoTransactionRepo()
		reviews = reviewRepo.NewMongoReviewRepo()

		if r, ok := mongoRequests.(*requestRepo.MongoRequestRepo); ok {
			if err := r.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: failed to ensure request indexes: %v", err)
			}
		}
		if a, ok := mongoAccounts.(*accountRepo.MongoAccountRepo); ok {
			if err := a.EnsureIndexes(); err != nil {
				logger.Sugar().Fatalf("main: failed to ensure account indexes: %v", err)
			}
		}
	} else {
		logger.Sugar().Warn("main: DATABASE_URL not set, using in-memory store")
		store := memory.NewStore()
		requests = store.Requests()
		accounts = store.Accounts()
		ledger = store.Transactions()
		reviews = store.Reviews()
	}

	// Notifications. With Redis available the mail queue decouples delivery
	// from the request path; otherwise messages go out on a goroutine.
	var notifier notification.Service
	var cacheClient *redis.Client
	if config.AppConfig.RedisAddr != "" {
		utils.InitCache()
		cacheClient = utils.GetCacheClient()

		var sender notification.Sender = notification.LogSender{}
		if config.AppConfig.SMTPHost != "" {
			sender = notification.NewGomailSender(config.AppConfig)
		}
		cron.InitMailWorker(sender)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisMailQueueDB,
		})
		defer asynqClient.Close()
		notifier = &notification.QueueNotificationService{
			Accounts: accounts,
			Client:   asynqClient,
		}
	} else {
		notifier = &notification.DirectNotificationService{
			Accounts: accounts,
			Sender:   notification.LogSender{},
		}
	}

	calculator := pricing.NewCalculator(engine)

	requestService := &request.DefaultRequestService{
		Requests: requests,
		Accounts: accounts,
		Ledger:   ledger,
		Pricing:  calculator,
		Notifier: notifier,
		Cfg:      engine,
	}
	matchingService := &matching.DefaultMatchingService{
		Requests: requests,
		Accounts: accounts,
		Pricing:  calculator,
		Cache:    cacheClient,
	}
	walletService := &wallet.DefaultWalletService{
		Accounts: accounts,
		Ledger:   ledger,
		Charger:  &wallet.StripeCharger{},
	}
	reviewService := &review.DefaultReviewService{
		Reviews:  reviews,
		Requests: requests,
		Accounts: accounts,
	}
	accountService := &account.DefaultAccountService{
		Accounts: accounts,
		Cfg:      engine,
	}

	handlerBundle := &handlers.HandlerBundle{
		Auth:    &handlers.AuthHandler{Svc: accountService},
		Request: &handlers.RequestHandler{Svc: requestService},
		Market:  &handlers.MarketHandler{Svc: matchingService},
		Wallet:  &handlers.WalletHandler{Svc: walletService},
		Review:  &handlers.ReviewHandler{Svc: reviewService},
	}

	router := routes.SetupRouter(handlerBundle)

	var redisClients []*redis.Client
	if cacheClient != nil {
		redisClients = append(redisClients, cacheClient)
	}
	utils.StartHealthMonitor(redisClients, database.MongoClient)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
