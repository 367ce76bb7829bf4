package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	req := require.New(t)
	t.Setenv("CONFIG_ENV", "test-missing")

	cfg, err := Load()
	req.NoError(err)
	req.Equal("release", cfg.Mode)
	req.Equal(5000, cfg.Port)
	req.Equal("./build", cfg.StaticPath)
	req.Equal(int64(65536), cfg.ReadLimit)
	req.Equal(54*time.Second, cfg.PingPeriod)
	req.Equal(64, cfg.SendBuffer)
	req.Equal(float64(20), cfg.RateLimitRPS)
}
