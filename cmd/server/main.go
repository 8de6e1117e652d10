package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"appointment-scheduler/internal/account"
	"appointment-scheduler/internal/config"
	gweb "appointment-scheduler/internal/grpcweb"
	"appointment-scheduler/internal/handler"
	"appointment-scheduler/internal/httpapi"
	"appointment-scheduler/internal/jobs"
	"appointment-scheduler/internal/logging"
	"appointment-scheduler/internal/metrics"
	"appointment-scheduler/internal/middleware"
	"appointment-scheduler/internal/repository"
	"appointment-scheduler/internal/schedule"
	"appointment-scheduler/internal/store"
	"appointment-scheduler/internal/store/memory"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// backend is everything the services need from storage.
type backend interface {
	repository.AppointmentRepository
	repository.UserRepository
	repository.RefreshTokenRepository
}

func openBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (backend, func(), error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}
	logger.Info("connected to postgres")

	st := store.New(pool)
	if err := st.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("migrations applied")
	return st, pool.Close, nil
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, closeDB, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	validator, err := schedule.NewValidator(cfg.ScheduleRules())
	if err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	appointments := schedule.NewService(db, validator, logger.Named("schedule"),
		schedule.WithObserver(metrics.NewRecorder(reg)),
	)
	accounts := account.NewService(db, db, account.Config{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}, logger.Named("account"))

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Stop()

	// grpc server
	h := handler.New(appointments, accounts, logger.Named("grpc"))
	srv := handler.NewServer(h, cfg.JWTSecret, rl, logger.Named("grpc"))

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errc := make(chan error, 2)
	go func() {
		logger.Info("grpc listening", zap.String("port", cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			errc <- fmt.Errorf("grpc: %w", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, cfg.CORSAllowedOrigins, logger.Named("grpcweb"))
	if err != nil {
		return err
	}
	defer bridge.Close()

	proxies, err := middleware.ParseProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}
	api := httpapi.New(appointments, accounts, rl, httpapi.Config{
		Secret:         cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Location:       cfg.Location(),
		AccessTTL:      cfg.AccessTokenTTL,
		RefreshTTL:     cfg.RefreshTokenTTL,
		SecureCookies:  cfg.SecureCookies,
		TrustedProxies: proxies,
	}, logger.Named("http"))

	httpSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Handler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), bridge.Handler()),
	}
	go func() {
		logger.Info("http listening", zap.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	purge, err := jobs.Start(cfg.PurgeSchedule, &jobs.PurgeTokens{
		Tokens: db,
		Log:    logger.Named("jobs"),
	}, logger)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-errc:
		logger.Error("server failed", zap.Error(err))
	}

	// graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	<-purge.Stop().Done()
	if serr := httpSrv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("http shutdown", zap.Error(serr))
	}
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		srv.Stop()
	}

	return err
}
