package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/courtside/prop-auctions/pkg/allowance"
	"github.com/courtside/prop-auctions/pkg/clock"
	accountshandler "github.com/courtside/prop-auctions/pkg/handlers/accounts"
	auctionshandler "github.com/courtside/prop-auctions/pkg/handlers/auctions"
	ledgerhandler "github.com/courtside/prop-auctions/pkg/handlers/ledger"
	schedulehandler "github.com/courtside/prop-auctions/pkg/handlers/schedule"
	wshandler "github.com/courtside/prop-auctions/pkg/handlers/websockets"
	"github.com/courtside/prop-auctions/pkg/middleware"
	"github.com/courtside/prop-auctions/pkg/schedule"
	"github.com/courtside/prop-auctions/pkg/scheduler"
	dydbstore "github.com/courtside/prop-auctions/pkg/storage/dynamodb"
	"github.com/courtside/prop-auctions/pkg/websockets"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	auctionsTable := os.Getenv("DYNAMODB_AUCTIONS_TABLE_NAME")
	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if accountsTable == "" || auctionsTable == "" || ledgerTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dbClient, accountsTable, auctionsTable, ledgerTable, connectionsTable)

	// SQS Client and refund scheduler
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_REFUND_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_REFUND_QUEUE_URL environment variable not set")
	}
	refundScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	// Allowance cycle window
	window, err := clock.NewTimeWindow(envOr("REFERENCE_TIMEZONE", clock.DefaultReferenceZone), envIntOr("ALLOWANCE_RESET_HOUR", clock.DefaultResetHour))
	if err != nil {
		log.Fatalf("invalid allowance window configuration: %v", err)
	}
	systemClock := clock.System{}
	allowanceSvc := allowance.NewService(store, systemClock, window)

	// WebSocket publisher: pushes through API Gateway when an endpoint is
	// configured, otherwise a no-op for local development.
	var publisher websockets.Publisher = &websockets.NoOpPublisher{}
	if endpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); endpoint != "" {
		publisher, err = websockets.NewPublisher(store, store, endpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	accountsHandler := accountshandler.NewAccountsHandler(store, allowanceSvc)
	auctionsHandler := auctionshandler.NewAuctionsHandler(store, refundScheduler, publisher, systemClock, window)
	ledgerHandler := ledgerhandler.NewLedgerHandler(store)
	websocketsHandler := wshandler.NewHandler(store)

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(logger))

	// Public routes.
	router.Post("/accounts", accountsHandler.CreateAccount)
	router.Get("/ws", websocketsHandler.ServeHTTP)

	// Authenticated routes.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator([]byte(jwtSecret)))

		r.Get("/profile", accountsHandler.GetProfile)
		r.Post("/allowance", accountsHandler.ClaimAllowance)
		r.Get("/accounts/{accountId}", func(w http.ResponseWriter, req *http.Request) {
			accountsHandler.GetAccountById(w, req, chi.URLParam(req, "accountId"))
		})

		r.Post("/auctions", auctionsHandler.CreateAuction)
		r.Post("/auctions/buy", auctionsHandler.BuyAuction)
		r.Get("/auctions", auctionsHandler.ListMine)
		r.Get("/auctions/all", auctionsHandler.ListMarketplace)
		r.Get("/auctions/sold", auctionsHandler.ListSold)
		r.Get("/auctions/{auctionId}", func(w http.ResponseWriter, req *http.Request) {
			auctionsHandler.GetAuctionById(w, req, chi.URLParam(req, "auctionId"))
		})

		r.Get("/ledger", ledgerHandler.ListLedgerEntries)

		// Game schedule lookups are only available when a schedule database
		// is configured.
		if dbURL := os.Getenv("SCHEDULE_DATABASE_URL"); dbURL != "" {
			pool, err := pgxpool.New(context.Background(), dbURL)
			if err != nil {
				log.Fatalf("failed to connect to schedule database: %v", err)
			}
			scheduleHandler := schedulehandler.NewScheduleHandler(schedule.NewStore(pool))
			r.Get("/schedule/games", scheduleHandler.GetGames)
			r.Get("/schedule/players", scheduleHandler.GetPlayers)
		}
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return n
}
