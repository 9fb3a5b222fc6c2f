package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load("testdata/does-not-exist.env")

	req.NoError(err)
	req.Equal(":8080", cfg.Server.Port)
	req.Equal([]string{"*"}, cfg.Server.AllowedOrigins)
	req.Equal(60*time.Second, cfg.Hub.SweepInterval)
	req.Equal(300*time.Second, cfg.Hub.PresenceTTL)
	req.Equal(2, cfg.Hub.MaxCallParticipants)
	req.False(cfg.AuthEnabled())
}

func TestLoad_PrefixedAndBareNames(t *testing.T) {
	req := require.New(t)
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load("testdata/does-not-exist.env")

	req.NoError(err)
	req.Equal(":9090", cfg.Server.Port)
	req.True(cfg.AuthEnabled())
	req.Equal([]string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_RejectsShortPresenceTTL(t *testing.T) {
	req := require.New(t)
	t.Setenv("PRESENCE_SWEEP_INTERVAL", "60s")
	t.Setenv("PRESENCE_TTL", "120s")

	_, err := Load("testdata/does-not-exist.env")

	req.Error(err)
	req.Contains(err.Error(), "PRESENCE_TTL")
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	req := require.New(t)
	cfg := Config{}

	err := cfg.Validate()

	req.Error(err)
	req.Contains(err.Error(), "SEND_BUFFER")
	req.Contains(err.Error(), "MAX_CALL_PARTICIPANTS")
	req.Contains(err.Error(), "STORE_TIMEOUT")
}
