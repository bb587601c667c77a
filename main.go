package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/mindpump/mindpump-api/config"
	"github.com/mindpump/mindpump-api/handlers"
	"github.com/mindpump/mindpump-api/logger"
	"github.com/mindpump/mindpump-api/middleware"
	"github.com/mindpump/mindpump-api/repository"
)

func main() {
	// Load .env file for local development; deployed environments set real vars.
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, environment variables might not be loaded: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}

	h := &handlers.DBHandler{
		Log:   log,
		Sets:  repository.NewSetRepository(db, log),
		Cards: repository.NewCardRepository(db, log),
	}
	gate := middleware.NewBasicAuth(db, log, cfg.BasicAuthUsername, cfg.BasicAuthPassword)
	router := handlers.NewRouter(h, gate, log)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(router)

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
