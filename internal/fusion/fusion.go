package fusion

import (
	"github.com/rs/zerolog"

	"farm-manager/internal/logging"
	"farm-manager/internal/models"
)

// Engine fuses the four signal records into one recommendation. Fuse is
// a pure computation over its inputs: identical inputs always yield an
// identical recommendation.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a fusion engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logging.WithAgent(logger, "fusion")}
}

// Fuse applies the ordered advice rules and the narrative renderer to
// one fact extraction over the four inputs, and assembles the final
// recommendation. The returned record is owned by the caller.
func (e *Engine) Fuse(
	field models.FieldAssessment,
	health models.HealthAssessment,
	price *models.PriceRecommendation,
	weather models.WeatherObservation,
) *models.Recommendation {
	summary := Summarize(field, health, price, weather)

	advice := make([]string, 0, len(adviceRules))
	for _, rule := range adviceRules {
		if line, ok := rule.apply(summary); ok {
			advice = append(advice, line)
		}
	}

	rec := &models.Recommendation{
		Crop:                summary.Crop,
		BestMandi:           summary.BestMandi,
		ExpectedPrice:       summary.ExpectedPrice,
		WeatherSummary:      weather,
		DetailedAdvice:      advice,
		FinalRecommendation: renderNarrative(summary),
	}

	logging.LogRecommendation(e.logger, rec.Crop, rec.BestMandi, len(advice))
	return rec
}
