// rfpagent is the RFP answering service: document ingestion plus a
// multi-agent question-answering pipeline exposed over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/api"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/config"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/container"
	"github.com/GonzaloPontnau/Multi-Agent-RFP-Orchestrator/pkg/retrieval"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("Warning: could not load %s: %v", envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", envPath)
	}

	ginMode := getEnv("GIN_MODE", "debug")
	gin.SetMode(ginMode)

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	cont := container.New(cfg)
	store := retrieval.NewMemoryStore()
	server := api.NewServer(cfg, store, cont)

	log.Printf("Starting rfpagent")
	log.Printf("HTTP Port: %s", cfg.GinPort)
	log.Printf("Config Directory: %s", *configDir)

	router := server.Router()
	if err := router.Run(":" + cfg.GinPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
