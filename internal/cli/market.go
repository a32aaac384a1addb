package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"farm-manager/internal/models"
	"farm-manager/pkg/utils"
)

func newMarketCmd(app *App) *cobra.Command {
	var crop string

	cmd := &cobra.Command{
		Use:   "market",
		Short: "Show the best mandi and price outlook for a crop",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if crop == "" {
				return fmt.Errorf("--crop is required")
			}

			rec, err := app.PriceAgent.Run(context.Background(), crop)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rec)
			}

			printPriceRecommendation(output, rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&crop, "crop", "", "crop name (required)")

	return cmd
}

func printPriceRecommendation(output *Output, rec *models.PriceRecommendation) {
	output.Bold("Market Outlook: %s", rec.Crop)
	output.Printf("  Best Mandi:      %s\n", rec.BestMandi)
	if rec.CurrentPrice != nil {
		output.Printf("  Current Price:   %s\n", utils.FormatQuintalPrice(*rec.CurrentPrice))
	}
	if rec.PredictedPrice != nil {
		output.Printf("  Predicted Price: %s\n", utils.FormatQuintalPrice(*rec.PredictedPrice))
	} else {
		output.Printf("  Predicted Price: N/A\n")
	}
	output.Printf("  Recommendation:  %s\n", rec.Recommendation)

	if rec.DataSource == models.SourceLive {
		output.Success("  Source: live mandi feed")
	} else {
		output.Dim("  Source: fallback dataset")
	}
}
