package main

import (
	"net/http"
	"os"

	"fileconv/apikeys"
	"fileconv/codec"
	"fileconv/config"
	"fileconv/logger"
	"fileconv/metrics"
	"fileconv/routes"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win either way.
	godotenv.Load()

	if err := logger.Init(config.GetLogFile(), true); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Info("Starting file converter server initialization")

	logger.Debug("Initializing image codecs")
	codec.Init()
	defer codec.Shutdown()

	logger.Debug("Initializing consumer key store")
	if err := os.MkdirAll(config.GetDataDir(), 0755); err != nil {
		logger.Fatalf("Failed to create data directory: %v", err)
	}
	if err := apikeys.Open(config.GetKeysDBPath()); err != nil {
		logger.Fatalf("Failed to initialize key store: %v", err)
	}
	defer apikeys.Close()
	logger.Info("Consumer key store initialized successfully")

	if config.GetMasterKey() == "" {
		logger.Warn("No master key configured (API_KEY); key management is disabled")
	}

	logger.Info("Registering HTTP routes")
	http.HandleFunc("/api/convert", routes.WithCORS(routes.ConvertHandler))
	http.HandleFunc("/api/formats", routes.WithCORS(routes.FormatsHandler))
	http.HandleFunc("/api/keys", routes.WithCORS(routes.KeysHandler))
	http.HandleFunc("/api/health", routes.WithCORS(routes.HealthHandler))
	http.Handle("/metrics", metrics.Handler())

	addr := config.GetListenAddr()
	logger.Infof("File converter server starting on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
