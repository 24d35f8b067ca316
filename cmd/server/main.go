package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-rsvp/config"
	"go-gin-rsvp/internal/database"
	"go-gin-rsvp/internal/handler"
	"go-gin-rsvp/internal/lock"
	"go-gin-rsvp/internal/metrics"
	"go-gin-rsvp/internal/notify"
	"go-gin-rsvp/internal/qrcode"
	"go-gin-rsvp/internal/queue"
	"go-gin-rsvp/internal/repository"
	"go-gin-rsvp/internal/service"
	"go-gin-rsvp/internal/worker"
	"go-gin-rsvp/pkg/clock"
	"go-gin-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := pflag.String("config", "", "config file (yaml/toml/json), env vars take precedence")
	migrate := pflag.Bool("migrate", true, "apply database schema on startup")
	pflag.Parse()

	if err := run(*configPath, *migrate); err != nil {
		logger.WithComponent("main").Fatal("Server exited", zap.Error(err))
	}
}

func run(configPath string, migrate bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	log := logger.WithComponent("main")

	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if cfg.Ticket.QRSigningSecret == "" {
		log.Warn("QR signing secret not set, ticket payloads carry only the integrity checksum")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer pool.Close()

	if migrate {
		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Redis 只有在 lock 或 queue 用到時才需要
	var rdb *redis.Client
	if cfg.Lock.Backend == config.LockBackendRedis || cfg.Queue.Backend == config.QueueBackendRedis {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer rdb.Close()
	}

	locker, err := lock.New(&cfg.Lock, rdb)
	if err != nil {
		return fmt.Errorf("init lock: %w", err)
	}

	consumerID, err := os.Hostname()
	if err != nil || consumerID == "" {
		consumerID = uuid.NewString()
	}
	notifications, err := queue.New(&cfg.Queue, rdb, consumerID)
	if err != nil {
		return fmt.Errorf("init notification queue: %w", err)
	}

	metrics.Register()

	txm := database.NewTxManager(pool)
	eventRepo := repository.NewEventRepository(pool)
	rsvpRepo := repository.NewRsvpRepository(pool)
	waitlistRepo := repository.NewWaitlistRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	codec := qrcode.NewCodec(cfg.Ticket.QRSigningSecret)
	clk := clock.Real()
	ledger := service.NewCapacityLedger(rsvpRepo)
	issuer := service.NewTicketIssuer(rsvpRepo, ticketRepo, codec, clk)
	waitlist := service.NewWaitlistQueue(txm, eventRepo, rsvpRepo, waitlistRepo, ledger, issuer, notifications, clk)

	rsvpService := service.NewRsvpService(txm, locker, eventRepo, rsvpRepo, ticketRepo, ledger, waitlist, issuer, notifications, clk, cfg.RSVP.MaxPlusOnes)
	checkInService := service.NewCheckInService(txm, eventRepo, rsvpRepo, ticketRepo, codec, clk)

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler.NewRouter(rsvpService, checkInService, []byte(cfg.Auth.JWTSecret)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	notificationWorker := worker.NewNotificationWorker(notify.New(&cfg.Notify), notifications)
	if err := notificationWorker.Start(ctx); err != nil {
		return fmt.Errorf("start notification worker: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	stop()
	notificationWorker.Wait()
	return err
}
