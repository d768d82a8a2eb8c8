package main

import (
	"ClinicFlow/cache"
	"ClinicFlow/config"
	"ClinicFlow/database"
	"ClinicFlow/routes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	db, err := database.InitDB(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("initialize database: %v", err)
	}

	if err := database.InitRedis(); err != nil {
		log.Fatalf("initialize redis: %v", err)
	}

	store, err := cache.NewCache()
	if err != nil {
		log.Fatalf("initialize cache: %v", err)
	}

	srv := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        routes.SetupRoutes(store, cfg, db),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("server stopped")
}
