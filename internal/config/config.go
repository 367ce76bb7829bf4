package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode" validate:"oneof=debug release"`
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	StaticPath   string        `mapstructure:"static_path" validate:"required"`
	ReadLimit    int64         `mapstructure:"read_limit" validate:"min=1024"`
	PingPeriod   time.Duration `mapstructure:"ping_period" validate:"gt=0"`
	SendBuffer   int           `mapstructure:"send_buffer" validate:"min=1"`
	RateLimitRPS float64       `mapstructure:"rate_limit_rps" validate:"gt=0"`
	Secret       string        `mapstructure:"secret"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)
	v.SetConfigFile(fileName)

	v.SetDefault("mode", "release")
	v.SetDefault("port", 5000)
	v.SetDefault("static_path", "./build")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("rate_limit_rps", 20)
	v.SetDefault("secret", "coderoom-dev-secret")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
