// Package models provides domain models for the farm advisory application.
package models

import (
	"time"
)

// DataSource identifies where a price recommendation came from.
type DataSource string

const (
	SourceLive            DataSource = "live"
	SourceFallbackDataset DataSource = "fallback_dataset"
)

// WeatherSource identifies whether a weather observation is real or degraded.
type WeatherSource string

const (
	WeatherLive    WeatherSource = "live"
	WeatherOffline WeatherSource = "offline"
)

// Decision represents a market timing decision.
type Decision string

const (
	DecisionWait        Decision = "WAIT"
	DecisionSell        Decision = "SELL"
	DecisionUnavailable Decision = "UNAVAILABLE"
)

// HealthStatus represents a crop health classification label.
type HealthStatus string

const (
	HealthHealthy          HealthStatus = "Healthy"
	HealthDiseasedMild     HealthStatus = "Diseased_mild"
	HealthDiseasedModerate HealthStatus = "Diseased_moderate"
)

// PricePoint is one cleaned observation from the mandi price table.
// Invariant after load: Price > 0, Date valid, Commodity and Market non-empty.
type PricePoint struct {
	Date      time.Time
	Commodity string
	Market    string
	Price     float64
}

// MandiChoice is the market judged best for a commodity at query time.
type MandiChoice struct {
	Market      string  `json:"market"`
	LatestPrice float64 `json:"latest_price"`
}

// ForecastResult is the output of the short-horizon price forecast.
// CurrentPrice and PredictedPrice are nil exactly when Decision is
// DecisionUnavailable (fewer than 2 observations for the series).
type ForecastResult struct {
	CurrentPrice   *float64 `json:"current_price"`
	PredictedPrice *float64 `json:"predicted_price"`
	Decision       Decision `json:"decision"`
}

// PriceRecommendation is the normalized output of the price agent.
// Immutable after construction; one per query.
type PriceRecommendation struct {
	Crop           string     `json:"crop"`
	BestMandi      string     `json:"best_mandi"`
	CurrentPrice   *float64   `json:"current_price"`
	PredictedPrice *float64   `json:"predicted_price"`
	Recommendation string     `json:"recommendation"`
	DataSource     DataSource `json:"data_source"`
}

// WeatherObservation is the output of the weather agent. The offline
// variant is schema-stable: numeric fields are zero, Rain is false and
// Source is the only field consumers branch on.
type WeatherObservation struct {
	Temperature float64       `json:"temperature"`
	Humidity    float64       `json:"humidity"`
	Rain        bool          `json:"rain"`
	WindSpeed   float64       `json:"wind_speed"`
	Description string        `json:"description"`
	Source      WeatherSource `json:"source"`
	Err         string        `json:"error,omitempty"`
}

// FieldAssessment is the field-monitoring perception output, supplied by
// an external image classifier.
type FieldAssessment struct {
	FieldLabel     string  `json:"field_label"`
	Confidence     float64 `json:"confidence"`
	WeedPercentage float64 `json:"weed_percentage"`
	CropStage      string  `json:"crop_stage"`
}

// HealthAssessment is the crop-health perception output, supplied by an
// external leaf classifier.
type HealthAssessment struct {
	HealthStatus  HealthStatus             `json:"health_status"`
	Confidence    float64                  `json:"confidence"`
	Probabilities map[HealthStatus]float64 `json:"probabilities"`
}

// Recommendation is the final fused advisory returned to the farmer.
// Built fresh per request; no mutation after return.
type Recommendation struct {
	Crop                string             `json:"crop"`
	BestMandi           string             `json:"best_mandi"`
	ExpectedPrice       string             `json:"expected_price"`
	WeatherSummary      WeatherObservation `json:"weather_summary"`
	DetailedAdvice      []string           `json:"detailed_advice"`
	FinalRecommendation string             `json:"final_recommendation"`
}
