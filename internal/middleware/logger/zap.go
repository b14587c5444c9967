package logger

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. Set CITY_FETCH_ENV=production
// for JSON output; the default development config is friendlier locally.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("CITY_FETCH_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
