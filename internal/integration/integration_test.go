// Package integration provides end-to-end tests for the advisory pipeline.
package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"farm-manager/internal/agents"
	"farm-manager/internal/fusion"
	"farm-manager/internal/market"
	"farm-manager/internal/models"
	"farm-manager/internal/weather"
)

const integrationDataset = `Price Date,Modal Price,Commodity,Market
01-03-2024,6000,Cotton,Warangal
02-03-2024,6080,Cotton,Warangal
03-03-2024,6150,Cotton,Warangal
04-03-2024,6210,Cotton,Warangal
01-03-2024,5900,Cotton,Adilabad
02-03-2024,5880,Cotton,Adilabad
01-03-2024,2100,Wheat,Nizamabad
02-03-2024,2080,Wheat,Nizamabad
03-03-2024,2050,Wheat,Nizamabad
04-03-2024,2020,Wheat,Nizamabad
`

func buildOrchestrator(t *testing.T, feedURL, weatherURL string) *agents.Orchestrator {
	t.Helper()

	datasetPath := filepath.Join(t.TempDir(), "daily_price.csv")
	if err := os.WriteFile(datasetPath, []byte(integrationDataset), 0644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}

	var feed *market.LiveFeed
	if feedURL != "" {
		feed = market.NewLiveFeed(market.LiveFeedOptions{
			BaseURL: feedURL,
			Timeout: time.Second,
			Logger:  zerolog.Nop(),
		})
	}

	priceAgent := agents.NewPriceAgent(agents.PriceAgentOptions{
		Feed:        feed,
		Cache:       market.NewDatasetCache(),
		DatasetPath: datasetPath,
		Forecaster:  market.NewForecaster(market.DefaultHorizon),
		Timeout:     10 * time.Second,
		Logger:      zerolog.Nop(),
	})

	var client *weather.Client
	if weatherURL != "" {
		client = weather.NewClient(weather.ClientOptions{
			BaseURL: weatherURL,
			APIKey:  "test-key",
			Timeout: time.Second,
			Logger:  zerolog.Nop(),
		})
	}

	weatherAgent := agents.NewWeatherAgent(agents.WeatherAgentOptions{
		Client:  client,
		Timeout: 10 * time.Second,
		Logger:  zerolog.Nop(),
	})

	return agents.NewOrchestrator(priceAgent, weatherAgent, fusion.NewEngine(zerolog.Nop()), zerolog.Nop())
}

// TestEndToEndFallbackAdvisory drives a full query through the fallback
// dataset with offline weather and checks the fused output end to end.
func TestEndToEndFallbackAdvisory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orch := buildOrchestrator(t, "", "")

	rec, err := orch.ProcessQuery(ctx, agents.QueryRequest{
		Crop: "Cotton",
		City: "Hyderabad",
		Field: models.FieldAssessment{
			FieldLabel:     "farmland",
			Confidence:     0.92,
			WeedPercentage: 12,
			CropStage:      "flowering",
		},
		Health: models.HealthAssessment{
			HealthStatus: models.HealthHealthy,
			Confidence:   0.88,
		},
	})
	if err != nil {
		t.Fatalf("Failed to process query: %v", err)
	}

	if rec.BestMandi != "Warangal" {
		t.Errorf("Expected Warangal as best mandi, got %s", rec.BestMandi)
	}
	if rec.ExpectedPrice == "N/A" {
		t.Error("Expected a forecast price for a rising four-point series")
	}
	if rec.WeatherSummary.Source != models.WeatherOffline {
		t.Errorf("Expected offline weather, got %s", rec.WeatherSummary.Source)
	}

	// Offline weather with a healthy low-weed field: health line,
	// unavailability line, market line, in that order.
	if len(rec.DetailedAdvice) != 3 {
		t.Fatalf("Expected 3 advice lines, got %d: %v", len(rec.DetailedAdvice), rec.DetailedAdvice)
	}
	last := rec.DetailedAdvice[2]
	if last != "Market insight: "+agents.TextWait {
		t.Errorf("Expected rising-market insight, got %q", last)
	}

	t.Logf("End-to-end fallback advisory passed: Mandi=%s, Price=%s", rec.BestMandi, rec.ExpectedPrice)
}

// TestEndToEndLiveSources runs the pipeline with both live sources up.
func TestEndToEndLiveSources(t *testing.T) {
	ctx := context.Background()

	feedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mandi":"Hyderabad","price":6300,"predicted":6100,"decision":"SELL NOW – feed sees a peak"}`))
	}))
	t.Cleanup(feedServer.Close)

	weatherServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"main": {"temp": 37, "humidity": 75},
			"wind": {"speed": 4.0},
			"weather": [{"description": "light rain"}],
			"rain": {"1h": 0.8}
		}`))
	}))
	t.Cleanup(weatherServer.Close)

	orch := buildOrchestrator(t, feedServer.URL, weatherServer.URL)

	rec, err := orch.ProcessQuery(ctx, agents.QueryRequest{
		Crop: "Cotton",
		City: "Hyderabad",
		Field: models.FieldAssessment{
			WeedPercentage: 30,
		},
		Health: models.HealthAssessment{
			HealthStatus: models.HealthDiseasedMild,
		},
	})
	if err != nil {
		t.Fatalf("Failed to process query: %v", err)
	}

	if rec.BestMandi != "Hyderabad" {
		t.Errorf("Expected feed mandi, got %s", rec.BestMandi)
	}
	if rec.WeatherSummary.Source != models.WeatherLive {
		t.Errorf("Expected live weather, got %s", rec.WeatherSummary.Source)
	}

	// Hot, humid and raining with mild disease and heavy weeds: every
	// conditional rule fires.
	if len(rec.DetailedAdvice) != 5 {
		t.Fatalf("Expected 5 advice lines, got %d: %v", len(rec.DetailedAdvice), rec.DetailedAdvice)
	}

	t.Logf("End-to-end live advisory passed: %d advice lines", len(rec.DetailedAdvice))
}

// TestRecommendationJSONStability verifies the fused record survives a
// JSON round trip with every field intact.
func TestRecommendationJSONStability(t *testing.T) {
	orch := buildOrchestrator(t, "", "")

	rec, err := orch.ProcessQuery(context.Background(), agents.QueryRequest{
		Crop:   "Wheat",
		City:   "Hyderabad",
		Health: models.HealthAssessment{HealthStatus: models.HealthDiseasedModerate},
	})
	if err != nil {
		t.Fatalf("Failed to process query: %v", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to marshal recommendation: %v", err)
	}

	var decoded models.Recommendation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal recommendation: %v", err)
	}

	if decoded.Crop != rec.Crop || decoded.BestMandi != rec.BestMandi {
		t.Error("Identity fields changed across the round trip")
	}
	if decoded.FinalRecommendation != rec.FinalRecommendation {
		t.Error("Narrative changed across the round trip")
	}
	if len(decoded.DetailedAdvice) != len(rec.DetailedAdvice) {
		t.Error("Advice list changed across the round trip")
	}
}

// TestConcurrentQueryProcessing verifies independent queries can run
// concurrently without interfering with each other.
func TestConcurrentQueryProcessing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orch := buildOrchestrator(t, "", "")

	queries := []agents.QueryRequest{
		{Crop: "Cotton", City: "Hyderabad"},
		{Crop: "Wheat", City: "Nizamabad"},
		{Crop: "Cotton", City: "Warangal", Health: models.HealthAssessment{HealthStatus: models.HealthDiseasedMild}},
		{Crop: "Wheat", City: "Adilabad", Field: models.FieldAssessment{WeedPercentage: 40}},
	}

	var wg sync.WaitGroup
	results := make(chan *models.Recommendation, len(queries))
	errs := make(chan error, len(queries))

	for _, q := range queries {
		wg.Add(1)
		go func(req agents.QueryRequest) {
			defer wg.Done()
			rec, err := orch.ProcessQuery(ctx, req)
			if err != nil {
				errs <- err
				return
			}
			results <- rec
		}(q)
	}

	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Errorf("Error processing query: %v", err)
	}

	processed := 0
	for rec := range results {
		if rec.Crop == "" || rec.FinalRecommendation == "" {
			t.Error("Incomplete recommendation from concurrent query")
		}
		processed++
	}

	if processed != len(queries) {
		t.Errorf("Expected %d recommendations, got %d", len(queries), processed)
	}

	t.Logf("Concurrent query processing passed: Processed %d queries", processed)
}
