package agents

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	apperrors "farm-manager/internal/errors"
	"farm-manager/internal/fusion"
	"farm-manager/internal/models"
)

func newTestOrchestrator(t *testing.T, weatherHandler http.HandlerFunc) *Orchestrator {
	t.Helper()
	return NewOrchestrator(
		newTestPriceAgent(t, ""),
		newTestWeatherAgent(t, weatherHandler),
		fusion.NewEngine(zerolog.Nop()),
		zerolog.Nop(),
	)
}

func TestOrchestratorProcessQuery(t *testing.T) {
	orch := newTestOrchestrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"main": {"temp": 30, "humidity": 65},
			"wind": {"speed": 2.0},
			"weather": [{"description": "scattered clouds"}]
		}`))
	})

	rec, err := orch.ProcessQuery(context.Background(), QueryRequest{
		Crop: "Wheat",
		City: "Hyderabad",
		Field: models.FieldAssessment{
			FieldLabel:     "farmland",
			Confidence:     0.9,
			WeedPercentage: 10,
			CropStage:      "vegetative",
		},
		Health: models.HealthAssessment{
			HealthStatus: models.HealthHealthy,
			Confidence:   0.95,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Crop != "Wheat" {
		t.Errorf("unexpected crop %q", rec.Crop)
	}
	if rec.BestMandi != "Adilabad" {
		t.Errorf("unexpected mandi %q", rec.BestMandi)
	}
	if rec.WeatherSummary.Source != models.WeatherLive {
		t.Errorf("expected live weather summary, got %s", rec.WeatherSummary.Source)
	}
	if len(rec.DetailedAdvice) == 0 {
		t.Fatal("expected at least one advice line")
	}
	if rec.FinalRecommendation == "" {
		t.Error("expected a narrative recommendation")
	}
}

func TestOrchestratorWeatherFailureDegrades(t *testing.T) {
	orch := newTestOrchestrator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	rec, err := orch.ProcessQuery(context.Background(), QueryRequest{
		Crop: "Wheat",
		City: "Hyderabad",
	})
	if err != nil {
		t.Fatalf("weather failure must not fail the query: %v", err)
	}
	if rec.WeatherSummary.Source != models.WeatherOffline {
		t.Errorf("expected offline weather summary, got %s", rec.WeatherSummary.Source)
	}
}

func TestOrchestratorPriceFailureIsFatal(t *testing.T) {
	orch := newTestOrchestrator(t, nil)

	rec, err := orch.ProcessQuery(context.Background(), QueryRequest{
		Crop: "Saffron",
		City: "Hyderabad",
	})
	if err == nil {
		t.Fatal("expected an error when the crop has no data")
	}
	if rec != nil {
		t.Fatal("expected no recommendation alongside the error")
	}

	var notFound *apperrors.CropNotFoundError
	if !apperrors.As(err, &notFound) {
		t.Fatalf("expected CropNotFoundError, got %T", err)
	}
}

func TestOrchestratorEmptyCrop(t *testing.T) {
	orch := newTestOrchestrator(t, nil)

	_, err := orch.ProcessQuery(context.Background(), QueryRequest{City: "Hyderabad"})
	if err == nil {
		t.Fatal("expected an error for an empty crop")
	}
	if !apperrors.Is(err, apperrors.ErrCropNotFound) {
		t.Fatalf("expected ErrCropNotFound, got %v", err)
	}
}
