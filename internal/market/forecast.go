package market

import (
	"sort"
	"strings"
	"time"

	"farm-manager/internal/models"
)

// DefaultHorizon is the forecast window in days.
const DefaultHorizon = 7

// Forecaster produces short-horizon price forecasts from a mandi price
// series. The estimator is an additive model: an ordinary least squares
// linear trend over days since the first observation, plus day-of-week
// offsets computed from the trend residuals. The fit is deterministic
// for identical input and tolerates irregular date spacing.
type Forecaster struct {
	Horizon int
}

// NewForecaster creates a forecaster with the given horizon. Horizons
// below 1 fall back to DefaultHorizon.
func NewForecaster(horizon int) Forecaster {
	if horizon < 1 {
		horizon = DefaultHorizon
	}
	return Forecaster{Horizon: horizon}
}

// Forecast fits the series for (crop, mandi) and predicts the mean price
// over the next Horizon days. With fewer than 2 observations it returns
// DecisionUnavailable with nil prices; that is an expected outcome, not
// an error. Otherwise the decision is WAIT when the predicted mean
// exceeds the last observed price, SELL otherwise.
func (f Forecaster) Forecast(points []models.PricePoint, crop, mandi string) models.ForecastResult {
	series := filterSeries(points, crop, mandi)
	if len(series) < 2 {
		return models.ForecastResult{Decision: models.DecisionUnavailable}
	}

	first := series[0].Date
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Date.Sub(first).Hours() / 24
		ys[i] = p.Price
	}

	slope, intercept := fitLine(xs, ys)
	season := weekdayOffsets(series, xs, slope, intercept)

	lastDate := series[len(series)-1].Date
	lastX := xs[len(xs)-1]

	var sum float64
	for k := 1; k <= f.Horizon; k++ {
		day := lastDate.AddDate(0, 0, k)
		yhat := intercept + slope*(lastX+float64(k)) + season[day.Weekday()]
		sum += yhat
	}
	predicted := sum / float64(f.Horizon)
	current := ys[len(ys)-1]

	decision := models.DecisionSell
	if predicted > current {
		decision = models.DecisionWait
	}

	return models.ForecastResult{
		CurrentPrice:   &current,
		PredictedPrice: &predicted,
		Decision:       decision,
	}
}

// filterSeries extracts the date-ascending series for one (crop, mandi)
// pair. The sort is stable so equal dates keep input order.
func filterSeries(points []models.PricePoint, crop, mandi string) []models.PricePoint {
	want := strings.ToLower(strings.TrimSpace(crop))

	var series []models.PricePoint
	for _, p := range points {
		if strings.ToLower(p.Commodity) == want && p.Market == mandi {
			series = append(series, p)
		}
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series
}

// fitLine computes an OLS fit y = intercept + slope*x. A degenerate x
// spread (all observations on one day) yields a flat line at the mean.
func fitLine(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for i := range xs {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		den += dx * dx
	}

	if den == 0 {
		return 0, meanY
	}
	return num / den, meanY - (num/den)*meanX
}

// weekdayOffsets computes the mean trend residual per weekday. Weekdays
// with no observations keep a zero offset.
func weekdayOffsets(series []models.PricePoint, xs []float64, slope, intercept float64) [7]float64 {
	var sums, counts [7]float64
	for i, p := range series {
		resid := p.Price - (intercept + slope*xs[i])
		wd := p.Date.Weekday()
		sums[wd] += resid
		counts[wd]++
	}

	var offsets [7]float64
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] > 0 {
			offsets[wd] = sums[wd] / counts[wd]
		}
	}
	return offsets
}
