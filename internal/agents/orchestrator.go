package agents

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	apperrors "farm-manager/internal/errors"
	"farm-manager/internal/fusion"
	"farm-manager/internal/models"
)

// Orchestrator runs the price and weather agents concurrently and fuses
// their results with the perception signals. One query is one short
// synchronous pipeline; the agents share no state and each applies its
// own bounded timeout, so neither can block the other.
type Orchestrator struct {
	price   *PriceAgent
	weather *WeatherAgent
	fusion  *fusion.Engine
	logger  zerolog.Logger
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(price *PriceAgent, weather *WeatherAgent, engine *fusion.Engine, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		price:   price,
		weather: weather,
		fusion:  engine,
		logger:  logger,
	}
}

type priceOutcome struct {
	rec *models.PriceRecommendation
	err error
}

// ProcessQuery resolves one farmer query into a fused recommendation.
// A weather failure degrades to the offline record; a price failure
// (crop not found, unreadable dataset) is fatal for the query.
func (o *Orchestrator) ProcessQuery(ctx context.Context, req QueryRequest) (*models.Recommendation, error) {
	if req.Crop == "" {
		return nil, apperrors.NewAgentError("orchestrator", "process query", apperrors.ErrCropNotFound)
	}

	priceCh := make(chan priceOutcome, 1)
	weatherCh := make(chan models.WeatherObservation, 1)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		rec, err := o.price.Run(ctx, req.Crop)
		priceCh <- priceOutcome{rec: rec, err: err}
	}()

	go func() {
		defer wg.Done()
		weatherCh <- o.weather.Fetch(ctx, req.City)
	}()

	wg.Wait()

	price := <-priceCh
	weather := <-weatherCh

	if price.err != nil {
		return nil, price.err
	}

	return o.fusion.Fuse(req.Field, req.Health, price.rec, weather), nil
}
