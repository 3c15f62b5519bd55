package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServer_StartStop(t *testing.T) {
	store := NewMemoryStore(DefaultHeroes())
	handler := NewRouter(store, zap.NewNop(), prometheus.NewRegistry(), RouterOptions{})
	server := NewServer("127.0.0.1:0", handler, zap.NewNop())

	require.NoError(t, server.Start())
	assert.NotEqual(t, "127.0.0.1:0", server.Addr(), "Addr resolves the bound port")

	resp, err := http.Get("http://" + server.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Stop(ctx))

	_, err = http.Get("http://" + server.Addr() + "/health")
	assert.Error(t, err, "server no longer accepts connections")
}

func TestServer_StartFailsOnBusyAddr(t *testing.T) {
	first := NewServer("127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())
	require.NoError(t, first.Start())
	defer first.Stop(context.Background())

	second := NewServer(first.Addr(), http.NotFoundHandler(), zap.NewNop())
	assert.Error(t, second.Start())
}
