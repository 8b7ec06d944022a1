package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"weatherbot/internal/domain"
)

// Fixed user-facing texts for gateway results that carry no forecast.
const (
	CityNotFoundMessage = "City not found!"
	NoDataMessage       = "No forecast data available for the next 24 hours."
)

const defaultBaseURL = "http://api.openweathermap.org/data/2.5"

// Client fetches forecasts from the OpenWeatherMap API
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	now     func() time.Time
}

// NewClient creates a forecast client for the given API key
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

// forecastResponse mirrors the fields we use from the 5-day/3-hour endpoint
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast24h returns the formatted forecast for the next 24 hours: a dated
// header followed by one line per 3-hour sample. An unknown city yields
// domain.ErrCityNotFound; network failures are returned wrapped.
func (c *Client) Forecast24h(ctx context.Context, city string) (string, error) {
	endpoint := fmt.Sprintf("%s/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrCityNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("forecast request failed: %s", resp.Status)
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode forecast: %w", err)
	}

	now := c.now()
	cutoff := now.Add(24 * time.Hour)

	var lines []string
	for _, sample := range data.List {
		at := time.Unix(sample.Dt, 0)
		if at.After(cutoff) {
			break
		}
		desc := ""
		if len(sample.Weather) > 0 {
			desc = sample.Weather[0].Description
		}
		lines = append(lines, fmt.Sprintf("%s - %s %s: %.1f°C",
			at.Format("15:04"), weatherIcon(desc), capitalize(desc), sample.Main.Temp))
	}

	if len(lines) == 0 {
		return NoDataMessage, nil
	}

	return fmt.Sprintf("24-Hour Forecast: %s\n%s",
		now.Format("02-01-2006"), strings.Join(lines, "\n")), nil
}

// weatherIcon maps an OpenWeatherMap condition description to an emoji
func weatherIcon(description string) string {
	icons := map[string]string{
		"clear sky":        "☀️",
		"few clouds":       "🌤️",
		"scattered clouds": "🌥️",
		"broken clouds":    "☁️",
		"overcast clouds":  "🌥️",
		"shower rain":      "🌧️",
		"rain":             "🌧️",
		"thunderstorm":     "⛈️",
		"snow":             "❄️",
		"mist":             "🌫️",
		"drizzle":          "🌦️",
		"light rain":       "🌦️",
		"heavy rain":       "🌧️",
		"light snow":       "🌨️",
		"heavy snow":       "❄️",
		"fog":              "🌁",
	}
	if icon, ok := icons[description]; ok {
		return icon
	}
	return "🌍"
}

// capitalize upper-cases the first rune of a description
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
