package agents

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"farm-manager/internal/logging"
	"farm-manager/internal/market"
	"farm-manager/internal/models"
	"farm-manager/pkg/utils"
)

// PriceAgent produces one normalized price recommendation per query.
// Sourcing is two-tier: a single live feed attempt first, then the
// fallback dataset, which is assumed always available. A result never
// mixes the two sources.
type PriceAgent struct {
	feed        *market.LiveFeed
	cache       *market.DatasetCache
	datasetPath string
	forecaster  market.Forecaster
	timeout     time.Duration
	logger      zerolog.Logger
}

// PriceAgentOptions holds the dependencies of a price agent.
type PriceAgentOptions struct {
	Feed        *market.LiveFeed
	Cache       *market.DatasetCache
	DatasetPath string
	Forecaster  market.Forecaster
	Timeout     time.Duration
	Logger      zerolog.Logger
}

// NewPriceAgent creates a new price agent.
func NewPriceAgent(opts PriceAgentOptions) *PriceAgent {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cache := opts.Cache
	if cache == nil {
		cache = market.NewDatasetCache()
	}
	return &PriceAgent{
		feed:        opts.Feed,
		cache:       cache,
		datasetPath: opts.DatasetPath,
		forecaster:  opts.Forecaster,
		timeout:     timeout,
		logger:      logging.WithAgent(opts.Logger, "price"),
	}
}

// Run resolves a price recommendation for the crop. Live data wins when
// available; otherwise the fallback dataset drives mandi selection and
// forecasting. CropNotFoundError and DataLoadError propagate: with no
// data there is no meaningful recommendation.
func (a *PriceAgent) Run(ctx context.Context, crop string) (*models.PriceRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	logger := logging.WithCrop(a.logger, crop)

	result := a.feed.Fetch(ctx, crop)
	if result.Available() {
		q := result.Quote
		logger.Info().Str("mandi", q.Mandi).Msg("Using live mandi quote")
		price := q.Price
		predicted := q.Predicted
		return &models.PriceRecommendation{
			Crop:           crop,
			BestMandi:      q.Mandi,
			CurrentPrice:   &price,
			PredictedPrice: &predicted,
			Recommendation: q.Decision,
			DataSource:     models.SourceLive,
		}, nil
	}
	logging.LogFallback(logger, "live_feed", result.Err.Error())

	points, err := a.cache.Get(a.datasetPath)
	if err != nil {
		return nil, err
	}

	choice, err := market.SelectBestMandi(points, crop)
	if err != nil {
		return nil, err
	}

	forecast := a.forecaster.Forecast(points, crop, choice.Market)
	logging.LogForecast(logger, crop, choice.Market, string(forecast.Decision))

	current := utils.Round2(choice.LatestPrice)
	rec := &models.PriceRecommendation{
		Crop:           crop,
		BestMandi:      choice.Market,
		CurrentPrice:   &current,
		Recommendation: DecisionText(forecast.Decision),
		DataSource:     models.SourceFallbackDataset,
	}
	if forecast.PredictedPrice != nil {
		predicted := utils.Round2(*forecast.PredictedPrice)
		rec.PredictedPrice = &predicted
	}

	return rec, nil
}
