package googlemaps_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faredeck/faredeck/internal/distance"
	"github.com/faredeck/faredeck/internal/distance/googlemaps"
)

func newMatrixServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func newTestClient(t *testing.T, serverURL string) *googlemaps.Client {
	t.Helper()
	client, err := googlemaps.NewClient(googlemaps.ClientConfig{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		HTTPClient: http.DefaultClient,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	return client
}

func TestClient_Estimate(t *testing.T) {
	server := newMatrixServer(t, `{
		"status": "OK",
		"origin_addresses": ["Mumbai, Maharashtra, India"],
		"destination_addresses": ["Pune, Maharashtra, India"],
		"rows": [{
			"elements": [{
				"status": "OK",
				"distance": {"text": "148.2 km", "value": 148231},
				"duration": {"text": "2 hours 55 mins", "value": 10500}
			}]
		}]
	}`)
	defer server.Close()

	client := newTestClient(t, server.URL)
	est, err := client.Estimate(context.Background(), "Mumbai", "Pune")
	require.NoError(t, err)

	assert.Equal(t, 148.23, est.DistanceKm)
	assert.Equal(t, 175, est.DurationMin)
	assert.Equal(t, distance.SourceProvider, est.Source)
}

func TestClient_EstimateUnresolvableRoute(t *testing.T) {
	server := newMatrixServer(t, `{
		"status": "OK",
		"origin_addresses": ["nowhere"],
		"destination_addresses": ["elsewhere"],
		"rows": [{
			"elements": [{"status": "NOT_FOUND"}]
		}]
	}`)
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Estimate(context.Background(), "nowhere", "elsewhere")
	require.Error(t, err)

	var provErr *distance.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "NOT_FOUND", provErr.Code)
	assert.Equal(t, googlemaps.ProviderName, provErr.Provider)
}

func TestClient_EstimateEmptyRows(t *testing.T) {
	server := newMatrixServer(t, `{
		"status": "OK",
		"origin_addresses": [],
		"destination_addresses": [],
		"rows": []
	}`)
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Estimate(context.Background(), "a", "b")

	var provErr *distance.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "NO_ROUTE", provErr.Code)
}

func TestClient_Name(t *testing.T) {
	server := newMatrixServer(t, `{"status":"OK","rows":[]}`)
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.Equal(t, "googlemaps", client.Name())
}
