package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MiniTwit-FS/MiniTwit-FS/internal/api"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/loghub"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/logging"
	"github.com/MiniTwit-FS/MiniTwit-FS/internal/store"
)

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":9090"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func main() {
	_ = godotenv.Load() // .env is optional, real deployments use the environment

	logger := logging.New()

	db, err := store.Open(logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to the database")
	}
	if err := store.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate the database")
	}
	logger.Info("Database connection successful")

	hub := loghub.NewHub()
	logger.AddHook(loghub.NewHook(hub))

	metrics := api.NewMetrics(prometheus.DefaultRegisterer)
	a := api.New(store.New(db), logger, metrics, hub, api.Config{
		SessionKey: os.Getenv("SESSION_KEY"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		LogDir:     os.Getenv("LOG_DIR"),
	})

	port := getPort()
	logger.WithField("port", port).Warn("Server starting")
	if err := http.ListenAndServe(port, a.Router()); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}
