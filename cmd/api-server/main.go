package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicware/clinic-api/internal/account"
	"github.com/clinicware/clinic-api/internal/api"
	"github.com/clinicware/clinic-api/internal/appointment"
	"github.com/clinicware/clinic-api/internal/config"
	"github.com/clinicware/clinic-api/internal/db"
	"github.com/clinicware/clinic-api/internal/prescription"
	redisclient "github.com/clinicware/clinic-api/internal/redis"
	"github.com/clinicware/clinic-api/internal/token"
)

const version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	accountRepo := account.NewPgRepository(pgPool)
	apptRepo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisBookingLocker(rdb, cfg.LockTTL)
	docs := redisclient.NewRedisDocumentStore(rdb)

	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL, accountRepo)
	accounts := account.NewService(accountRepo, tokens)
	appts := appointment.NewService(apptRepo, accountRepo, locker)
	prescriptions := prescription.NewService(docs, appts)

	router := api.NewRouter(api.RouterConfig{
		Accounts:      accounts,
		Appointments:  appts,
		Prescriptions: prescriptions,
		Tokens:        tokens,
		LoginLimiter:  api.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst),
		PgPool:        pgPool,
		Redis:         rdb,
		Env:           cfg.Env,
		Version:       version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("http listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
			stop()
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
