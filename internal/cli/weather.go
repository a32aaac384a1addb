package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"farm-manager/internal/models"
)

func newWeatherCmd(app *App) *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show current weather for a city",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if city == "" {
				return fmt.Errorf("--city is required")
			}

			obs := app.WeatherAgent.Fetch(context.Background(), city)

			if output.IsJSON() {
				return output.JSON(obs)
			}

			if obs.Source == models.WeatherOffline {
				output.Warning("Weather data unavailable: %s", obs.Err)
				return nil
			}

			output.Bold("Weather: %s", city)
			output.Printf("  Conditions:  %s\n", obs.Description)
			output.Printf("  Temperature: %.1f°C\n", obs.Temperature)
			output.Printf("  Humidity:    %.0f%%\n", obs.Humidity)
			output.Printf("  Wind:        %.1f m/s\n", obs.WindSpeed)
			output.Printf("  Rain:        %v\n", obs.Rain)
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city name (required)")

	return cmd
}
