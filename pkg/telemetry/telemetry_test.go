package telemetry_test

import (
	"context"
	"testing"

	"github.com/Aidin1998/studysheets/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{Tracing: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
