package resilience_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsense/airsense/internal/provider/resilience"
)

func TestRegistry_HealthLifecycle(t *testing.T) {
	registry := resilience.NewRegistry()
	client := resilience.NewClient(resilience.DefaultConfig("openweathermap"))

	registry.Register(client)

	health, ok := registry.Health("openweathermap")
	require.True(t, ok)
	assert.True(t, health.Healthy())
	assert.Nil(t, health.LastSuccessAt)

	registry.RecordSuccess("openweathermap")
	health, _ = registry.Health("openweathermap")
	assert.NotNil(t, health.LastSuccessAt)

	registry.RecordFailure("openweathermap", errors.New("timeout"))
	health, _ = registry.Health("openweathermap")
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "timeout", health.LastError)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()

	_, ok := registry.Health("nope")
	assert.False(t, ok)

	// Recording against an unknown name is a no-op, not a panic.
	registry.RecordSuccess("nope")
	registry.RecordFailure("nope", errors.New("x"))
}

func TestRegistry_AllHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	registry.Register(resilience.NewClient(resilience.DefaultConfig("airquality")))
	registry.Register(resilience.NewClient(resilience.DefaultConfig("geocoding")))

	all := registry.AllHealth()
	assert.Len(t, all, 2)
}
