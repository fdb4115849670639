package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/idgen"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/seed"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/tickets"
	"github.com/Domenick1991/flightbooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type stores struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	users    repository.UserRepository
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.NewZeroLog(cfg.App.Env)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStores, err := openStores(ctx, cfg, appLog)
	if err != nil {
		appLog.Error("open storage", logger.Err(err))
		os.Exit(1)
	}
	defer closeStores()

	var searchCache flights.SearchCache
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.SearchCacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			appLog.Warn("redis unavailable, searches will not be cached", logger.Err(err))
		} else {
			searchCache = redisCache
		}
	}

	var producer *kafka.Producer
	var bookingProducer booking.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, appLog.With(logger.F("component", "kafka")))
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			appLog.Warn("kafka check failed, events may be lost", logger.Err(err))
		}
		bookingProducer = producer
	}

	numbers, err := idgen.NewTicketNumbers(cfg.Tickets.NodeID, cfg.Tickets.Prefix)
	if err != nil {
		appLog.Error("init ticket id generator", logger.Err(err))
		os.Exit(1)
	}

	flightService := flights.NewFlightService(st.flights, searchCache, flights.WithLogger(appLog))
	bookingService := booking.NewBookingService(
		st.bookings,
		bookingProducer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(appLog),
	)
	userService := users.NewUserService(st.users, users.WithBcryptCost(cfg.Users.BcryptCost), users.WithLogger(appLog))

	ticketOpts := []tickets.TicketServiceOption{tickets.WithLogger(appLog)}
	if producer != nil {
		ticketOpts = append(ticketOpts, tickets.WithProducer(producer, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic))
	}
	ticketService := tickets.NewTicketService(
		st.bookings,
		tickets.NewIssuer(numbers, tickets.WithSeatMap(cfg.Tickets.SeatRows, cfg.Tickets.SeatsPerRow)),
		ticketOpts...,
	)

	if cfg.Catalog.Seed {
		if _, err := seed.Load(ctx, flightService, time.Now(), appLog); err != nil {
			appLog.Error("seed catalog", logger.Err(err))
			os.Exit(1)
		}
	}

	router := bootstrap.NewRouter(cfg.HTTP, bootstrap.Handlers{
		Flights:  api.NewFlightHandler(flightService, time.Local),
		Bookings: api.NewBookingHandler(bookingService, flightService, userService, ticketService),
		Users:    api.NewUserHandler(userService),
	}, appLog)

	if err := bootstrap.Run(ctx, cfg.HTTP, router, appLog); err != nil {
		appLog.Error("server error", logger.Err(err))
		os.Exit(1)
	}
}

func openStores(ctx context.Context, cfg *config.Config, appLog logger.Logger) (stores, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		appLog.Info("using in-memory storage")
		return stores{
			flights:  repository.NewMemoryFlightRepository(),
			bookings: repository.NewMemoryBookingRepository(),
			users:    repository.NewMemoryUserRepository(),
		}, func() {}, nil
	}

	if cfg.Database.Migrate {
		if err := repository.Migrate(cfg.Database.URL("pgx5")); err != nil {
			return stores{}, nil, err
		}
		appLog.Info("database migrated")
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return stores{}, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return stores{}, nil, err
	}

	return stores{
		flights:  repository.NewFlightRepository(pool),
		bookings: repository.NewBookingRepository(pool),
		users:    repository.NewUserRepository(pool),
	}, pool.Close, nil
}
