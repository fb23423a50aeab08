package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "personal-site-oi5a.onrender.com", cfg.Client.Host)
	assert.Equal(t, "wss", cfg.Client.Scheme)
	assert.Equal(t, "my_imu_id", cfg.Client.IMUID)
	assert.Equal(t, time.Duration(0), cfg.Client.HandshakeTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IMUWS_HOST", "localhost:9000")
	t.Setenv("IMUWS_SCHEME", "ws")
	t.Setenv("IMU_ID", "bench-imu")
	t.Setenv("IMUWS_HANDSHAKE_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Client.Host)
	assert.Equal(t, "ws", cfg.Client.Scheme)
	assert.Equal(t, "bench-imu", cfg.Client.IMUID)
	assert.Equal(t, 3*time.Second, cfg.Client.HandshakeTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		desc string
		key  string
		val  string
	}{
		{desc: "bad scheme", key: "IMUWS_SCHEME", val: "https"},
		{desc: "bad log level", key: "LOG_LEVEL", val: "trace"},
		{desc: "bad port", key: "IMUWS_HTTP_PORT", val: "70000"},
		{desc: "unparsable duration", key: "IMUWS_HANDSHAKE_TIMEOUT", val: "soon"},
		{desc: "negative timeout", key: "IMUWS_HANDSHAKE_TIMEOUT", val: "-1s"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadClientIgnoresServerSettings(t *testing.T) {
	t.Setenv("IMUWS_HTTP_PORT", "70000")
	t.Setenv("IMUWS_RECENT_READINGS", "0")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "my_imu_id", cfg.Client.IMUID)

	_, err = LoadServer()
	assert.Error(t, err)
}

func TestLoadServerIgnoresClientSettings(t *testing.T) {
	t.Setenv("IMUWS_SCHEME", "https")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())

	_, err = LoadClient()
	assert.Error(t, err)
}
