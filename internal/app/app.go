package app

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"dnsauth/internal/app/bootstrap"
	"dnsauth/internal/app/server"
	"dnsauth/internal/config"
	jobruntime "dnsauth/internal/jobs/runtime"
	"dnsauth/internal/support"
)

const defaultGatewayPort = 8080

func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	log.SetLevel(log.DebugLevel)

	portFlag := flag.Int("port", defaultGatewayPort, "Port for the gateway API server")
	productionFlag := flag.Bool("production", false, "Run in production mode")
	flag.Parse()

	config.SetProductionMode(*productionFlag)
	if config.IsProduction() {
		log.SetLevel(log.InfoLevel)
	}

	port := resolvePort("GATEWAY_PORT", "port", *portFlag)

	bootstrap.Setup()

	if client, err := support.GetRedisClient(); err != nil {
		log.Warn("Redis unavailable, instance heartbeat disabled", "error", err)
	} else {
		heartbeatCancel := jobruntime.LaunchInstanceHeartbeat(context.Background(), client)
		defer heartbeatCancel()
		defer func() {
			if err := support.CloseRedisClient(); err != nil {
				log.Warn("error closing redis client", "error", err)
			}
		}()
	}

	return server.OpenRoutes(port)
}

func resolvePort(primaryEnv, legacyEnv string, fallback int) int {
	if port := readPort(primaryEnv); port != 0 {
		return port
	}
	if port := readPort(legacyEnv); port != 0 {
		return port
	}
	return fallback
}

func readPort(envKey string) int {
	raw := os.Getenv(envKey)
	if raw == "" {
		return 0
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port == 0 {
		log.Warn("invalid port override", "env", envKey, "value", raw)
		return 0
	}
	return port
}
