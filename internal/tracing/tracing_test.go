package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	p, err := Setup(context.Background(), "heroes")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Shutdown(context.Background()), "nil provider shuts down cleanly")
}

func TestSetup_WithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	t.Setenv("OTEL_SERVICE_NAME", "heroes-test")

	p, err := Setup(context.Background(), "heroes")
	require.NoError(t, err)
	require.NotNil(t, p)
	// Nothing was recorded, so shutdown has nothing to send to the unreachable collector.
	assert.NoError(t, p.Shutdown(context.Background()))
}
