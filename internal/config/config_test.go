package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("API_KEY", "s3cr3t")
}

func TestFromEnviron_Defaults(t *testing.T) {
	req := require.New(t)
	setRequired(t)

	cfg, err := FromEnviron()
	req.NoError(err)

	httpCfg := cfg.HTTP()
	req.Equal("0.0.0.0", httpCfg.Host)
	req.Equal(8080, httpCfg.Port)
	req.Equal(10*time.Second, httpCfg.ReadTimeout)
	req.Equal(15*time.Second, httpCfg.WriteTimeout)
	req.Equal(60*time.Second, httpCfg.IdleTimeout)
	req.Equal(10*time.Second, httpCfg.ShutdownTimeout)
	req.Empty(httpCfg.AllowedOrigins)
	req.True(httpCfg.AllowCredentials)

	req.Equal("info", cfg.Logging().Level)
	req.Equal("text", cfg.Logging().Format)
	req.Equal("bolt://localhost:7687", cfg.Graph().URI)
	req.Equal("s3cr3t", cfg.APIKey)
}

func TestFromEnviron_Overrides(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASS", "password")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SERVER_ALLOW_CREDENTIALS", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnviron()
	req.NoError(err)

	req.Equal(9090, cfg.HTTP().Port)
	req.Equal(3*time.Second, cfg.HTTP().ReadTimeout)
	req.Equal([]string{"http://a.test", "http://b.test"}, cfg.HTTP().AllowedOrigins)
	req.False(cfg.HTTP().AllowCredentials)
	req.Equal("neo4j", cfg.Graph().Username)
	req.Equal("password", cfg.Graph().Password)
	req.Equal("json", cfg.Logging().Format)
}

func TestFromEnviron_MissingRequired(t *testing.T) {
	t.Run("graph uri", func(t *testing.T) {
		t.Setenv("NEO4J_URI", "")
		t.Setenv("API_KEY", "s3cr3t")

		_, err := FromEnviron()
		require.ErrorIs(t, err, ErrMissingGraphURI)
	})

	t.Run("api key", func(t *testing.T) {
		t.Setenv("NEO4J_URI", "bolt://localhost:7687")
		t.Setenv("API_KEY", "")

		_, err := FromEnviron()
		require.ErrorIs(t, err, ErrMissingSecret)
	})
}

func TestFromEnviron_InvalidPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := FromEnviron()
	require.Error(t, err)
}
