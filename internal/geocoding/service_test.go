package geocoding_test

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsense/airsense/internal/geocoding"
)

type mockProvider struct {
	places     []geocoding.Place
	err        error
	fetchCount atomic.Int32
}

func (m *mockProvider) Search(_ context.Context, _ string, _ int) ([]geocoding.Place, error) {
	m.fetchCount.Add(1)
	return m.places, m.err
}

func (m *mockProvider) Reverse(_ context.Context, _, _ float64) ([]geocoding.Place, error) {
	m.fetchCount.Add(1)
	return m.places, m.err
}

func amsterdam() []geocoding.Place {
	return []geocoding.Place{
		{Name: "Amsterdam", Lat: 52.3727, Lon: 4.8936, Country: "NL", State: "North Holland"},
	}
}

func newService(provider geocoding.Provider) *geocoding.Service {
	return geocoding.NewService(geocoding.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})
}

func TestService_Search(t *testing.T) {
	provider := &mockProvider{places: amsterdam()}
	svc := newService(provider)

	places, err := svc.Search(context.Background(), "Amsterdam", 5)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Amsterdam", places[0].Name)
	assert.InDelta(t, 52.3727, places[0].Lat, 1e-9)
}

func TestService_Search_CachesQueries(t *testing.T) {
	provider := &mockProvider{places: amsterdam()}
	svc := newService(provider)

	ctx := context.Background()

	_, err := svc.Search(ctx, "Amsterdam", 5)
	require.NoError(t, err)

	// Same query, different casing and surrounding whitespace: cache hit.
	_, err = svc.Search(ctx, "  amsterdam ", 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.fetchCount.Load())
}

func TestService_Search_EmptyQuery(t *testing.T) {
	svc := newService(&mockProvider{})

	_, err := svc.Search(context.Background(), "   ", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, geocoding.ErrEmptyQuery)
}

func TestService_Search_NoResults(t *testing.T) {
	svc := newService(&mockProvider{places: []geocoding.Place{}})

	_, err := svc.Search(context.Background(), "Xyzzyville", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, geocoding.ErrPlaceNotFound)
}

func TestService_Reverse(t *testing.T) {
	provider := &mockProvider{places: amsterdam()}
	svc := newService(provider)

	ctx := context.Background()

	places, err := svc.Reverse(ctx, 52.3727, 4.8936)
	require.NoError(t, err)
	require.Len(t, places, 1)

	// Reverse lookups are cached per coordinate too.
	_, err = svc.Reverse(ctx, 52.3727, 4.8936)
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.fetchCount.Load())
}
