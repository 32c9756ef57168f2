package kit

import "go.uber.org/zap"

// NewLogger builds a zap logger tagged with the service name. The
// development environment gets console output, everything else JSON.
func NewLogger(service, env string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.InitialFields = map[string]any{"service": service}
	l, _ := cfg.Build()
	return l
}
