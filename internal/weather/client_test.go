package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherbot/internal/domain"
)

func newTestClient(serverURL string, now time.Time) *Client {
	c := NewClient("test-key")
	c.baseURL = serverURL
	c.now = func() time.Time { return now }
	return c
}

func TestForecast24h_FormatsSamples(t *testing.T) {
	now := time.Now()
	first := now.Add(3 * time.Hour)
	second := now.Add(6 * time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "Moscow", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		fmt.Fprintf(w, `{"list":[
			{"dt":%d,"main":{"temp":12.34},"weather":[{"description":"clear sky"}]},
			{"dt":%d,"main":{"temp":-1.5},"weather":[{"description":"light snow"}]}
		]}`, first.Unix(), second.Unix())
	}))
	defer server.Close()

	client := newTestClient(server.URL, now)

	got, err := client.Forecast24h(context.Background(), "Moscow")
	require.NoError(t, err)

	expected := fmt.Sprintf("24-Hour Forecast: %s\n%s - ☀️ Clear sky: 12.3°C\n%s - 🌨️ Light snow: -1.5°C",
		now.Format("02-01-2006"),
		time.Unix(first.Unix(), 0).Format("15:04"),
		time.Unix(second.Unix(), 0).Format("15:04"))
	assert.Equal(t, expected, got)
}

func TestForecast24h_CutsOffAfter24Hours(t *testing.T) {
	now := time.Now()
	inside := now.Add(23 * time.Hour)
	outside := now.Add(25 * time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"list":[
			{"dt":%d,"main":{"temp":10},"weather":[{"description":"rain"}]},
			{"dt":%d,"main":{"temp":20},"weather":[{"description":"clear sky"}]}
		]}`, inside.Unix(), outside.Unix())
	}))
	defer server.Close()

	client := newTestClient(server.URL, now)

	got, err := client.Forecast24h(context.Background(), "Moscow")
	require.NoError(t, err)

	assert.Contains(t, got, "Rain")
	assert.NotContains(t, got, "Clear sky")
}

func TestForecast24h_UnknownIcon(t *testing.T) {
	now := time.Now()
	at := now.Add(time.Hour)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"list":[
			{"dt":%d,"main":{"temp":5},"weather":[{"description":"volcanic ash"}]}
		]}`, at.Unix())
	}))
	defer server.Close()

	client := newTestClient(server.URL, now)

	got, err := client.Forecast24h(context.Background(), "Catania")
	require.NoError(t, err)
	assert.Contains(t, got, "🌍 Volcanic ash")
}

func TestForecast24h_CityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Now())

	_, err := client.Forecast24h(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestForecast24h_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Now())

	_, err := client.Forecast24h(context.Background(), "Moscow")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCityNotFound)
}

func TestForecast24h_NoSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"list":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Now())

	got, err := client.Forecast24h(context.Background(), "Moscow")
	require.NoError(t, err)
	assert.Equal(t, NoDataMessage, got)
}
