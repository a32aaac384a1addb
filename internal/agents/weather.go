package agents

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"farm-manager/internal/logging"
	"farm-manager/internal/models"
	"farm-manager/internal/weather"
)

// offlineDescription is the fixed description of the degraded record.
const offlineDescription = "Unavailable"

// WeatherAgent fetches live weather and degrades to a schema-stable
// offline observation on any failure. Fetch never returns an error.
type WeatherAgent struct {
	client  *weather.Client
	timeout time.Duration
	logger  zerolog.Logger
}

// WeatherAgentOptions holds the dependencies of a weather agent. A nil
// Client (no credentials configured) behaves like a failed fetch.
type WeatherAgentOptions struct {
	Client  *weather.Client
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewWeatherAgent creates a new weather agent.
func NewWeatherAgent(opts WeatherAgentOptions) *WeatherAgent {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WeatherAgent{
		client:  opts.Client,
		timeout: timeout,
		logger:  logging.WithAgent(opts.Logger, "weather"),
	}
}

// Fetch returns the current weather for a city, or the offline record
// when the provider is unreachable, rejects the credentials, or does not
// know the city. The offline record keeps the full schema: zero numeric
// fields, Rain false, and Source as the single degradation marker.
func (a *WeatherAgent) Fetch(ctx context.Context, city string) models.WeatherObservation {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	logger := logging.WithCity(a.logger, city)

	if a.client == nil {
		logging.LogFallback(logger, "weather", "weather credentials not configured")
		return offlineObservation("weather credentials not configured")
	}

	obs, err := a.client.Current(ctx, city)
	if err != nil {
		logging.LogFallback(logger, "weather", err.Error())
		return offlineObservation(err.Error())
	}

	logger.Info().
		Float64("temp", obs.Temperature).
		Bool("rain", obs.Rain).
		Msg("Live weather observation")
	return obs
}

func offlineObservation(reason string) models.WeatherObservation {
	return models.WeatherObservation{
		Rain:        false,
		Description: offlineDescription,
		Source:      models.WeatherOffline,
		Err:         reason,
	}
}
