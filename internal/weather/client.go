// Package weather provides a client for the OpenWeather current-conditions API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "farm-manager/internal/errors"
	"farm-manager/internal/models"
)

// Client is the OpenWeather API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a weather client.
type ClientOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewClient creates a new OpenWeather client with a hard request timeout.
func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5/weather"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     opts.Logger.With().Str("component", "weather_client").Logger(),
	}
}

// openWeatherResponse mirrors the nested provider payload. Rain decodes
// as a map so key presence (any rain volume reported) is observable.
type openWeatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Rain map[string]float64 `json:"rain"`
}

// Current fetches current conditions for a city in metric units. Any
// HTTP error status (401/403/404 included) or malformed body returns a
// WeatherError; the caller decides how to degrade.
func (c *Client) Current(ctx context.Context, city string) (models.WeatherObservation, error) {
	endpoint := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.WeatherObservation{}, apperrors.NewWeatherError(city, 0, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Dur("duration", time.Since(start)).Msg("Weather request failed")
		return models.WeatherObservation{}, apperrors.NewWeatherError(city, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherObservation{}, apperrors.NewWeatherError(city, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherObservation{}, apperrors.NewWeatherError(city, 0, err)
	}

	var payload openWeatherResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.WeatherObservation{}, apperrors.NewWeatherError(city, 0, err)
	}

	description := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	c.logger.Debug().
		Str("city", city).
		Float64("temp", payload.Main.Temp).
		Dur("duration", time.Since(start)).
		Msg("Weather observation received")

	return models.WeatherObservation{
		Temperature: payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Rain:        payload.Rain != nil,
		WindSpeed:   payload.Wind.Speed,
		Description: description,
		Source:      models.WeatherLive,
	}, nil
}
