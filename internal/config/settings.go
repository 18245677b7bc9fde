package config

import (
	"sync/atomic"
	"time"

	"dnsauth/internal/support"
)

const defaultStoreTimeout = 5 * time.Second

// Settings holds the service-level knobs. All values come from the
// environment (godotenv is loaded by app.Run before ReadSettings).
type Settings struct {
	StoreTimeout time.Duration
	SeedFile     string
}

var (
	current        atomic.Value
	productionMode atomic.Bool
)

func ReadSettings() {
	timeoutSeconds := support.GetEnvInt("DB_QUERY_TIMEOUT_SECONDS", 0)

	settings := Settings{
		StoreTimeout: defaultStoreTimeout,
		SeedFile:     support.GetEnv("SEED_FILE", ""),
	}
	if timeoutSeconds > 0 {
		settings.StoreTimeout = time.Duration(timeoutSeconds) * time.Second
	}

	current.Store(settings)
}

func GetSettings() Settings {
	if raw := current.Load(); raw != nil {
		return raw.(Settings)
	}
	return Settings{StoreTimeout: defaultStoreTimeout}
}

// StoreTimeout bounds every store call made on behalf of a single request.
func StoreTimeout() time.Duration {
	return GetSettings().StoreTimeout
}

func SeedFile() string {
	return GetSettings().SeedFile
}

func SetProductionMode(enabled bool) {
	productionMode.Store(enabled)
}

func IsProduction() bool {
	return productionMode.Load()
}
