package telemetry

import "go.uber.org/zap"

// NewLogger builds the production logger used across the service.
func NewLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}
