package fusion

import (
	"fmt"
	"strconv"
	"strings"

	"farm-manager/internal/models"
)

// renderNarrative produces the full-sentence final decision from the
// same facts the advice rules consume, in fixed order: weather, crop
// health, weed pressure, market. Offline weather contributes no
// sentences; the advice list already carries the unavailability line.
func renderNarrative(s SignalSummary) string {
	var parts []string

	if s.WeatherLive {
		parts = append(parts, fmt.Sprintf(
			"The current weather shows a temperature of %s°C with %s%% humidity and %s conditions.",
			formatSignal(s.Temperature), formatSignal(s.Humidity), s.Description))

		if s.Rain {
			parts = append(parts, "Rainfall increases the risk of disease spread and post-harvest losses.")
		} else {
			parts = append(parts, "Dry weather conditions are favorable for crop protection and harvesting activities.")
		}
	}

	switch s.HealthStatus {
	case models.HealthDiseasedMild:
		parts = append(parts, "Since the disease level is mild, timely preventive treatment can restore crop health.")
	case models.HealthDiseasedModerate:
		parts = append(parts, "Due to moderate disease severity, immediate treatment is critical before harvest.")
	default:
		parts = append(parts, "The crop is healthy, which supports better yield and market quality.")
	}

	if s.WeedPressure {
		parts = append(parts, "Weed pressure is high and should be controlled to avoid yield reduction.")
	}

	if s.PricesRising {
		parts = append(parts, "Market trends indicate rising prices, so delaying harvest may increase profitability.")
	} else {
		parts = append(parts, "Market prices may decline, so early harvest and selling is advisable.")
	}

	return strings.Join(parts, " ")
}

// formatSignal renders a reading without trailing zeros (30 not 30.0).
func formatSignal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
