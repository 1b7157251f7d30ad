package openweathermap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airsense/airsense/internal/geocoding"
	"github.com/airsense/airsense/internal/geocoding/openweathermap"
	"github.com/airsense/airsense/internal/provider/resilience"
)

func newTestClient(baseURL string) *openweathermap.Client {
	return openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     "****",
		BaseURL:    baseURL,
		HTTPClient: resilience.NewClient(resilience.DefaultConfig("test")),
	})
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/direct", r.URL.Path)
		assert.Equal(t, "Den Haag", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"name": "The Hague", "lat": 52.08, "lon": 4.31, "country": "NL", "state": "South Holland"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	places, err := client.Search(context.Background(), "Den Haag", 3)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "The Hague", places[0].Name)
	assert.Equal(t, "NL", places[0].Country)
}

func TestClient_Reverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("lat"), "52.08")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"name": "The Hague", "lat": 52.08, "lon": 4.31, "country": "NL"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	places, err := client.Reverse(context.Background(), 52.08, 4.31)
	require.NoError(t, err)
	require.Len(t, places, 1)
}

func TestClient_Search_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), "Amsterdam", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, geocoding.ErrProviderUnavailable)
}

func TestClient_Search_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]interface{}{})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	places, err := client.Search(context.Background(), "Nowhere", 5)
	require.NoError(t, err)
	assert.Empty(t, places)
}
