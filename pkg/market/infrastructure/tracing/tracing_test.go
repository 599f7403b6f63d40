package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {
	var out bytes.Buffer
	shutdown, err := Setup(&out)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "checkout")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, out.String(), `"Name":"checkout"`)
	assert.Contains(t, out.String(), ServiceName)
}
