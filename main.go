package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/config"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/jobs"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/mq"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/obs"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/repository/memory"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/routes"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/logger"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/services/notification"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/validator"
)

func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (repository.Store, error) {
	if cfg.Storage == config.StorageMemory {
		log.Info("using in-memory storage")
		return memory.New(), nil
	}
	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(ctx, db); err != nil {
		return nil, err
	}
	return repository.NewGormStore(db), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	appLogger := logger.New(os.Stderr, logger.ParseLevel(cfg.LogLevel), cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		log.Fatalf("init tracer: %v", err)
	}

	store, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}

	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	if rdb == nil {
		appLogger.Info("REDIS_ADDR not set, caching disabled")
	}
	cache := services.NewCache(rdb, cfg.CacheTTL())

	var uploader services.ImageUploader
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cld != nil {
		uploader = services.NewCloudinaryUploader(cld)
	}

	if err := validator.RegisterBindings(); err != nil {
		log.Fatalf("register validators: %v", err)
	}

	router, m, c := config.InitApp(cfg)

	channels := []notification.Channel{
		notification.NewLogChannel(appLogger),
		notification.NewMelodyService(m),
	}
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer pub.Close()
		channels = append(channels, notification.NewAMQPChannel(pub))
	}
	dispatcher := notification.NewDispatcher(notification.DispatcherOptions{
		Repo:     store.Notifications(),
		Channels: channels,
		Logger:   appLogger,
	})

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL())
	hotelConfig := services.NewHotelConfigService(services.HotelConfigServiceOptions{
		Store:  store,
		Cache:  cache,
		Logger: appLogger,
	})
	reservations := services.NewReservationService(services.ReservationServiceOptions{
		Store:  store,
		Config: hotelConfig,
		Cache:  cache,
		Logger: appLogger,
	})
	payments := services.NewPaymentService(services.PaymentServiceOptions{
		Store:  store,
		Cache:  cache,
		Logger: appLogger,
	})
	booking := services.NewBookingFacade(services.BookingFacadeOptions{
		Reservations: reservations,
		Payments:     payments,
		Notifier:     dispatcher,
		Users:        store.Users(),
		Logger:       appLogger,
	})
	auth := services.NewAuthService(services.AuthServiceOptions{
		Users:  store.Users(),
		Tokens: tokens,
		Logger: appLogger,
	})
	if err := auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	if err := jobs.InitCronJobs(c, booking, appLogger); err != nil {
		log.Fatalf("init cron jobs: %v", err)
	}

	config.InitWebSocket(router, m, tokens)

	routes.SetupRoutes(router, routes.Dependencies{
		Tokens: tokens,
		Auth:   auth,
		Rooms: services.NewRoomService(services.RoomServiceOptions{
			Store:    store,
			Cache:    cache,
			Uploader: uploader,
			Logger:   appLogger,
		}),
		Catalog: services.NewCatalogService(services.CatalogServiceOptions{
			Store:  store,
			Cache:  cache,
			Logger: appLogger,
		}),
		Booking: booking,
		Notifications: services.NewNotificationService(services.NotificationServiceOptions{
			Store:    store,
			Notifier: dispatcher,
			Logger:   appLogger,
		}),
		HotelConfig: hotelConfig,
		Dashboards: services.NewDashboardService(services.DashboardServiceOptions{
			Store:  store,
			Logger: appLogger,
		}),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		appLogger.Info("server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	<-c.Stop().Done()
	_ = m.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("http shutdown: %v", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		appLogger.Error("tracer shutdown: %v", err)
	}
}
