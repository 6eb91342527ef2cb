package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_booking"
	createPayoutHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_payout"
	createPreauthHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/create_preauth"
	getBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_booking"
	getPayoutHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_payout"
	getProEarningsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_pro_earnings"
	getUserBookingsHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/get_user_bookings"
	sendPayoutHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/send_payout"
	syncPaymentHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/sync_payment"
	syncPayoutHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/sync_payout"
	transitionBookingHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/transition_booking"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/config"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	earningRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/earning"
	paymentRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/payment"
	payoutRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/payout"
	authProviderClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/authprovider"
	paymentProviderClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/paymentprovider"
	payoutProviderClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/payoutprovider"
	proDirectoryClient "github.com/m04kA/SMC-MarketplaceService/internal/integrations/prodirectory"
	bookingsService "github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
	earningsService "github.com/m04kA/SMC-MarketplaceService/internal/service/earnings"
	notificationsService "github.com/m04kA/SMC-MarketplaceService/internal/service/notifications"
	paymentsService "github.com/m04kA/SMC-MarketplaceService/internal/service/payments"
	payoutsService "github.com/m04kA/SMC-MarketplaceService/internal/service/payouts"
	createBookingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
	createPayoutUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_payout"
	transitionBookingUC "github.com/m04kA/SMC-MarketplaceService/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/metrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/redislock"
	"github.com/m04kA/SMC-MarketplaceService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-MarketplaceService/pkg/txmanager"
)

// payoutClaimLockTTL страховочный TTL блокировки агрегации выплат
const payoutClaimLockTTL = 30 * time.Second

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-MarketplaceService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (блокировки агрегации выплат)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	// Подключаемся к RabbitMQ (события уведомлений)
	publisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatal("Failed to connect to rabbitmq: %v", err)
	}
	defer publisher.Close()
	log.Info("Successfully connected to rabbitmq (exchange=%s)", cfg.RabbitMQ.Exchange)

	// Инициализируем интеграционных клиентов
	authClient := authProviderClient.NewClient(
		cfg.AuthProvider.URL,
		time.Duration(cfg.AuthProvider.Timeout)*time.Second,
		log,
	)
	proDirClient := proDirectoryClient.NewClient(
		cfg.ProDirectory.URL,
		time.Duration(cfg.ProDirectory.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentProviderClient.NewClient(
		cfg.PaymentProvider.Name,
		cfg.PaymentProvider.URL,
		time.Duration(cfg.PaymentProvider.Timeout)*time.Second,
		log,
	)
	payoutClient := payoutProviderClient.NewClient(
		cfg.PayoutProvider.Name,
		cfg.PayoutProvider.URL,
		time.Duration(cfg.PayoutProvider.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (AuthProvider=%s, ProDirectory=%s, PaymentProvider=%s, PayoutProvider=%s)",
		cfg.AuthProvider.URL, cfg.ProDirectory.URL, cfg.PaymentProvider.URL, cfg.PayoutProvider.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		paymentRepository *paymentRepo.Repository
		earningRepository *earningRepo.Repository
		payoutRepository  *payoutRepo.Repository
	)

	// Интерфейс transaction manager для use cases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		earningRepository = earningRepo.NewRepository(wrappedDB)
		payoutRepository = payoutRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		earningRepository = earningRepo.NewRepository(db)
		payoutRepository = payoutRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	dispatcher := notificationsService.NewDispatcher(publisher, log)

	feeCalculator := earningsService.NewPercentFeeCalculator(cfg.Platform.FeeBps, map[domain.ServiceCategory]int64{})

	earningSvc := earningsService.NewService(
		earningRepository,
		bookingRepository,
		feeCalculator,
		log,
	)

	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		paymentClient,
		earningSvc,
		dispatcher,
		log,
		paymentsService.RetryPolicy{
			MaxAttempts: cfg.PaymentProvider.MaxAttempts,
			BaseDelayMs: cfg.PaymentProvider.BaseDelayMs,
		},
		cfg.Platform.Currency,
	)

	payoutSvc := payoutsService.NewService(
		payoutRepository,
		earningRepository,
		payoutClient,
		proDirClient,
		dispatcher,
		log,
		payoutsService.RetryPolicy{
			MaxAttempts: cfg.PayoutProvider.MaxAttempts,
			BaseDelayMs: cfg.PayoutProvider.BaseDelayMs,
		},
		cfg.Platform.Currency,
	)

	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		proDirClient,
		dispatcher,
		log,
	)

	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		paymentSvc,
		dispatcher,
		txMgr,
		log,
	)

	payoutLocker := redislock.New(redisClient, payoutClaimLockTTL)
	createPayoutUseCase := createPayoutUC.NewUseCase(
		payoutSvc,
		payoutLocker,
		dispatcher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	createPreauth := createPreauthHandler.NewHandler(paymentSvc, log)
	syncPayment := syncPaymentHandler.NewHandler(paymentSvc, log)
	getProEarnings := getProEarningsHandler.NewHandler(payoutSvc, earningSvc, log)
	createPayout := createPayoutHandler.NewHandler(createPayoutUseCase, log)
	getPayout := getPayoutHandler.NewHandler(payoutSvc, log)
	sendPayout := sendPayoutHandler.NewHandler(payoutSvc, log)
	syncPayout := syncPayoutHandler.NewHandler(payoutSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют Bearer-токен
	api := r.PathPrefix("/api/v1").Subrouter()
	authMiddleware := middleware.NewAuth(authClient, proDirClient, log)
	api.Use(authMiddleware.Middleware)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Жизненный цикл бронирования ---
	api.HandleFunc("/bookings/{bookingId}/accept",
		transitionBooking.HandleTo(domain.StatusAccepted)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/reject",
		transitionBooking.HandleTo(domain.StatusRejected)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/on-my-way",
		transitionBooking.HandleTo(domain.StatusOnMyWay)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/arrive",
		transitionBooking.HandleTo(domain.StatusArrived)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/start",
		transitionBooking.HandleTo(domain.StatusInProgress)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/finish",
		transitionBooking.HandleTo(domain.StatusAwaitingClientApproval)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/complete",
		transitionBooking.HandleTo(domain.StatusCompleted)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/dispute",
		transitionBooking.HandleTo(domain.StatusDisputed)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/mark-paid",
		transitionBooking.HandleTo(domain.StatusPaid)).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel",
		transitionBooking.HandleTo(domain.StatusCanceled)).Methods(http.MethodPatch)

	// --- Платежи ---
	api.HandleFunc("/bookings/{bookingId}/payment", createPreauth.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/{paymentId}/sync", syncPayment.Handle).Methods(http.MethodPost)

	// --- Заработки и выплаты ---
	api.HandleFunc("/pros/{proProfileId}/earnings", getProEarnings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proProfileId}/payouts", createPayout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payouts/{payoutId}", getPayout.Handle).Methods(http.MethodGet)
	api.HandleFunc("/payouts/{payoutId}/send", sendPayout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payouts/{payoutId}/sync", syncPayout.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
