package backend

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBackendURL is where the answering service listens when run locally.
const DefaultBackendURL = "http://localhost:5000"

// ResolveBackendURL returns the answering service URL.
// Priority: flag > config > env > default
func ResolveBackendURL(flagValue string) string {
	if url := strings.TrimSpace(flagValue); url != "" {
		return url
	}

	if url := strings.TrimSpace(viper.GetString("backend.url")); url != "" {
		return url
	}

	if url := strings.TrimSpace(os.Getenv("CAMPUSBOT_BACKEND_URL")); url != "" {
		return url
	}

	return DefaultBackendURL
}

// ResolveTimeout returns the configured request timeout, or DefaultTimeout.
func ResolveTimeout() time.Duration {
	if d := viper.GetDuration("backend.timeout"); d > 0 {
		return d
	}
	return DefaultTimeout
}
