package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/facades"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/handlers"
	appjwt "github.com/Hunter28-lucky/Esports-india-sub001/internal/jwt"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/middlewares"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/repositories"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/services"

	_ "github.com/Hunter28-lucky/Esports-india-sub001/docs"
	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title Esports India API
// @version 1.0.0
// @description Tournament platform backend: listings, joins, waiting rooms, wallet and UPI payments
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		gatewayURL, gatewayToken, siteURL,
		kafkaBroker, kafkaTopic, logLevel,
		jwtSecret, jwtExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		gatewayURL, gatewayToken, siteURL,
		kafkaBroker, kafkaTopic, logLevel,
		jwtSecret, jwtExp,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// all application, database, Redis, gateway, Kafka, logging, and JWT
// configuration.
func parseConfig(path string) (
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	gatewayURL, gatewayToken, siteURL string,
	kafkaBroker, kafkaTopic, logLevel string,
	jwtSecretKey string, jwtExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "esports")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// Payment gateway config
	gatewayURL = getEnv("GATEWAY_BASE_URL", "https://pay.ekqr.in")
	gatewayToken = getEnv("GATEWAY_USER_TOKEN", "test_token")
	siteURL = getEnv("SITE_BASE_URL", "http://localhost:3000")

	// Kafka config
	kafkaBroker = getEnv("KAFKA_BROKER", "localhost:9092")
	kafkaTopic = getEnv("KAFKA_TOPIC", "wallet-events")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, gateway facade, and
// HTTP server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	gatewayURL, gatewayToken, siteURL string,
	kafkaBroker, kafkaTopic, logLevel string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL: %s", dsn)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer for wallet and payment events
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(kafkaBroker),
		Topic:    kafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	// Payment gateway facade
	gateway := facades.NewPaymentGatewayFacade(
		&http.Client{Timeout: 30 * time.Second},
		gatewayURL,
		gatewayToken,
	)

	// Initialize JWT service
	jwt := appjwt.New(
		appjwt.WithSecretKey(jwtSecretKey),
		appjwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	tournamentReadRepo := repositories.NewTournamentReadRepository(db)
	tournamentCache := repositories.NewTournamentCacheRepository(rdb, 30*time.Second)
	participantReadRepo := repositories.NewParticipantReadRepository(db)
	participantWriteRepo := repositories.NewParticipantWriteRepository(db, middlewares.GetTxFromContext)
	transactionReadRepo := repositories.NewTransactionReadRepository(db)
	transactionWriteRepo := repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext)
	participantFeed := repositories.NewParticipantFeedRepository(rdb)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwt)
	tournamentService := services.NewTournamentService(
		tournamentReadRepo, tournamentCache,
		participantReadRepo, participantWriteRepo,
		userWriteRepo, transactionWriteRepo,
		participantFeed, kafkaWriter,
	)
	paymentService := services.NewPaymentService(gateway, siteURL, kafkaWriter)
	waitingRoomService := services.NewWaitingRoomService(tournamentReadRepo, participantReadRepo, participantFeed)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	balanceHandler := handlers.NewBalanceHandler(userReadRepo, jwt)
	transactionsHandler := handlers.NewTransactionsHandler(transactionReadRepo, jwt)
	tournamentsHandler := handlers.NewTournamentsHandler(tournamentService)
	adminTournamentsHandler := handlers.NewAdminTournamentsHandler(tournamentService)
	myTournamentsHandler := handlers.NewMyTournamentsHandler(tournamentService)
	participantsHandler := handlers.NewParticipantsHandler(tournamentService)
	joinHandler := handlers.NewJoinHandler(tournamentService, jwt)
	waitingRoomHandler := handlers.NewWaitingRoomHandler(waitingRoomService, participantReadRepo, jwt)
	createPaymentHandler := handlers.NewCreatePaymentHandler(paymentService)
	verifyPaymentHandler := handlers.NewVerifyPaymentHandler(paymentService)
	paymentWebhookHandler := handlers.NewPaymentWebhookHandler(paymentService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	// Payment proxy routes, called by the gateway and the payment page
	r.Post("/api/create-payment", createPaymentHandler)
	r.Post("/api/verify-payment", verifyPaymentHandler)
	r.Post("/api/payment-webhook", paymentWebhookHandler)

	// Public routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", registerHandler)
		r.Post("/login", loginHandler)
		r.Get("/tournaments", tournamentsHandler)
		r.Get("/admin/tournaments", adminTournamentsHandler)
		r.Get("/my-tournaments", myTournamentsHandler)
		r.Get("/tournaments/{id}/participants", participantsHandler)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(jwt))
			r.Get("/balance", balanceHandler)
			r.Get("/transactions", transactionsHandler)
			r.Get("/tournaments/{id}/room", waitingRoomHandler)
			r.With(middlewares.TxMiddleware(db)).Post("/tournaments/{id}/join", joinHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
