package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicware/clinic-api/internal/appointment"
	"github.com/clinicware/clinic-api/internal/config"
	"github.com/clinicware/clinic-api/internal/db"
)

// completion-worker periodically marks scheduled appointments whose time has
// passed as completed, so the past/future history filters stay truthful.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("completion-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running completion worker in env=%s interval=%s", cfg.Env, cfg.WorkerInterval)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	repo := appointment.NewPgRepository(pgPool)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Println("shutting down completion-worker")
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(rootCtx, cfg.WorkerInterval)
			n, err := repo.CompletePast(runCtx, time.Now())
			cancel()
			if err != nil {
				log.Printf("completion pass failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("marked %d past appointments completed", n)
			}
		}
	}
}
