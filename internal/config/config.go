package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"APP_ENV" env-default:"development"`
	HTTPServer HTTPServerConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Metrics    MetricsConfig
	Admin      AdminConfig
}

type HTTPServerConfig struct {
	Address string `env:"HTTP_ADDR" env-default:":8080"`
}

type JWTConfig struct {
	// Secret must come from the environment; the service refuses to boot
	// with an implicit default.
	Secret   string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL time.Duration `env:"JWT_TTL" env-default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ORIGINS" env-default:"http://localhost:5173,http://localhost:4200"`
}

type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" env-default:"false"`
	Token   string `env:"METRICS_TOKEN"`
}

// AdminConfig optionally seeds an admin account at startup. Without it every
// registered user is a customer and the admin endpoints stay unreachable.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	return &cfg
}
