package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"farm-manager/internal/agents"
	"farm-manager/internal/models"
)

// signalsFile is the on-disk shape of the perception signals, matching
// the outputs of the external field and leaf classifiers.
type signalsFile struct {
	Field  models.FieldAssessment  `json:"field"`
	Health models.HealthAssessment `json:"health"`
}

func newAdviseCmd(app *App) *cobra.Command {
	var (
		crop        string
		city        string
		signalsPath string
		fieldLabel  string
		cropStage   string
		weedPercent float64
		health      string
		confidence  float64
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Produce a fused farm recommendation",
		Long: `Fuses crop health, field condition, mandi prices and weather into a
single recommendation with an advice list and a narrative decision.

Perception signals come either from --signals (a JSON file with the
classifier outputs) or from the individual flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if crop == "" {
				return fmt.Errorf("--crop is required")
			}

			req := agents.QueryRequest{
				Crop: crop,
				City: city,
				Field: models.FieldAssessment{
					FieldLabel:     fieldLabel,
					WeedPercentage: weedPercent,
					CropStage:      cropStage,
				},
				Health: models.HealthAssessment{
					HealthStatus: models.HealthStatus(health),
					Confidence:   confidence,
				},
			}

			if signalsPath != "" {
				data, err := os.ReadFile(signalsPath)
				if err != nil {
					return fmt.Errorf("reading signals file: %w", err)
				}
				var signals signalsFile
				if err := json.Unmarshal(data, &signals); err != nil {
					return fmt.Errorf("parsing signals file: %w", err)
				}
				req.Field = signals.Field
				req.Health = signals.Health
			}

			rec, err := app.Orchestrator.ProcessQuery(context.Background(), req)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}

			printRecommendation(output, rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&crop, "crop", "", "crop name (required)")
	cmd.Flags().StringVar(&city, "city", "", "city for weather lookup")
	cmd.Flags().StringVar(&signalsPath, "signals", "", "JSON file with field and health classifier outputs")
	cmd.Flags().StringVar(&fieldLabel, "field-label", "", "field classifier label")
	cmd.Flags().StringVar(&cropStage, "crop-stage", "Growing", "crop stage (Growing, Ready for harvest)")
	cmd.Flags().Float64Var(&weedPercent, "weed-percent", 0, "estimated weed coverage percentage")
	cmd.Flags().StringVar(&health, "health", string(models.HealthHealthy), "health status (Healthy, Diseased_mild, Diseased_moderate)")
	cmd.Flags().Float64Var(&confidence, "health-confidence", 0, "health classifier confidence")

	return cmd
}

func printRecommendation(output *Output, rec *models.Recommendation) {
	output.Bold("Final Recommendation")
	output.Printf("  Crop:           %s\n", rec.Crop)
	output.Printf("  Best Mandi:     %s\n", rec.BestMandi)
	output.Printf("  Expected Price: %s\n", rec.ExpectedPrice)
	output.Println()

	output.Bold("Detailed Advice")
	for i, line := range rec.DetailedAdvice {
		output.Printf("  %d. %s\n", i+1, line)
	}
	output.Println()

	output.Bold("Weather Summary")
	w := rec.WeatherSummary
	if w.Source == models.WeatherLive {
		output.Printf("  %s, %.1f°C, %.0f%% humidity, wind %.1f m/s\n",
			w.Description, w.Temperature, w.Humidity, w.WindSpeed)
	} else {
		output.Warning("  Weather data unavailable")
	}
	output.Println()

	output.Bold("Decision")
	output.Printf("  %s\n", rec.FinalRecommendation)
}
