package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aescanero/imuws/internal/config"
	"github.com/aescanero/imuws/pkg/adapters/wsclient"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func ackServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"ok"}`))
		_, _, _ = conn.ReadMessage()
	}))
}

func clientConfig(host, metricsFile string) *config.Config {
	return &config.Config{
		LogLevel: "info",
		Client: config.ClientConfig{
			Host:        host,
			Scheme:      "ws",
			IMUID:       "my_imu_id",
			MetricsFile: metricsFile,
		},
	}
}

func TestRunUploads(t *testing.T) {
	s := ackServer()
	defer s.Close()

	metricsFile := filepath.Join(t.TempDir(), "upload.prom")
	var out bytes.Buffer

	err := run(context.Background(), clientConfig(strings.TrimPrefix(s.URL, "http://"), metricsFile), zap.NewNop(), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `Received from server: {"status":"ok"}`)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `imuws_exchanges_total{endpoint="imu_upload",status="ok"} 1`)
}

func TestRunFailsWhenServerIsDown(t *testing.T) {
	s := ackServer()
	host := strings.TrimPrefix(s.URL, "http://")
	s.Close()

	metricsFile := filepath.Join(t.TempDir(), "upload.prom")
	var out bytes.Buffer

	err := run(context.Background(), clientConfig(host, metricsFile), zap.NewNop(), &out)
	assert.ErrorIs(t, err, wsclient.ErrDial)
	assert.NotContains(t, out.String(), "Sending data")

	data, rerr := os.ReadFile(metricsFile)
	require.NoError(t, rerr)
	assert.Contains(t, string(data), `imuws_exchanges_total{endpoint="imu_upload",status="error"} 1`)
}
