// Package fusion combines perception, market and weather signals into
// one explainable recommendation.
package fusion

import (
	"fmt"
	"strings"

	"farm-manager/internal/models"
)

// Thresholds for the risk rules.
const (
	weedPressureThreshold = 20.0 // percent
	humidityRiskThreshold = 70.0 // percent
	heatRiskThreshold     = 35.0 // degrees C
)

// SignalSummary is the single fact-extraction over the four input
// records. Both the advice list and the narrative render from it, so the
// two passes cannot drift apart.
type SignalSummary struct {
	Crop          string
	BestMandi     string
	ExpectedPrice string

	HealthStatus models.HealthStatus
	WeedPressure bool

	WeatherLive      bool
	Temperature      float64
	Humidity         float64
	Rain             bool
	Description      string
	HighHumidityRain bool
	HighHeat         bool

	MarketText   string
	PricesRising bool
}

// Summarize extracts the decision-relevant facts from the four signal
// records. It reads nothing but its inputs, so equal inputs always
// produce an equal summary.
func Summarize(
	field models.FieldAssessment,
	health models.HealthAssessment,
	price *models.PriceRecommendation,
	weather models.WeatherObservation,
) SignalSummary {
	s := SignalSummary{
		Crop:          price.Crop,
		BestMandi:     price.BestMandi,
		ExpectedPrice: "N/A",
		HealthStatus:  health.HealthStatus,
		WeedPressure:  field.WeedPercentage > weedPressureThreshold,
		WeatherLive:   weather.Source == models.WeatherLive,
		Temperature:   weather.Temperature,
		Humidity:      weather.Humidity,
		Rain:          weather.Rain,
		Description:   weather.Description,
		MarketText:    price.Recommendation,
		PricesRising:  strings.Contains(price.Recommendation, "WAIT"),
	}

	if price.PredictedPrice != nil {
		s.ExpectedPrice = fmt.Sprintf("%.2f", *price.PredictedPrice)
	}

	if s.WeatherLive {
		s.HighHumidityRain = weather.Humidity > humidityRiskThreshold && weather.Rain
		s.HighHeat = weather.Temperature > heatRiskThreshold
	}

	return s
}
