package fusion

import (
	"farm-manager/internal/models"
)

// adviceRule is one independent advisory check: a pure function from the
// signal summary to zero-or-one advice line. Rules are evaluated in the
// fixed order declared in adviceRules.
type adviceRule struct {
	name  string
	apply func(SignalSummary) (string, bool)
}

// Advice line texts. The health rule always contributes exactly one
// line; every other rule is conditional.
const (
	adviceHealthUrgent = "Moderate disease detected. Apply recommended fungicide or bactericide immediately and remove heavily infected leaves to prevent spread."
	adviceHealthMild   = "Mild disease detected. Apply preventive spray and continue monitoring crop health."
	adviceHealthGood   = "Crop health is good. Maintain regular monitoring and nutrition."

	adviceDiseaseRisk    = "High humidity and rainfall increase disease risk. Avoid irrigation and apply protective fungicide."
	adviceHeatAdvisory   = "High temperature detected. Avoid spraying during midday; spray early morning or evening."
	adviceWeatherOffline = "Weather data unavailable. Advice based on crop and market conditions only."

	adviceWeedControl = "High weed infestation detected. Mechanical weeding or selective herbicide application is advised."

	adviceMarketPrefix = "Market insight: "
)

// adviceRules is the declared rule order: health, weather risk (or the
// single offline line), weed pressure, market. Appending a rule extends
// the advice list without touching existing rules.
var adviceRules = []adviceRule{
	{name: "health", apply: healthRule},
	{name: "weather_disease_risk", apply: diseaseRiskRule},
	{name: "weather_heat", apply: heatRule},
	{name: "weather_offline", apply: weatherOfflineRule},
	{name: "weed", apply: weedRule},
	{name: "market", apply: marketRule},
}

func healthRule(s SignalSummary) (string, bool) {
	switch s.HealthStatus {
	case models.HealthDiseasedModerate:
		return adviceHealthUrgent, true
	case models.HealthDiseasedMild:
		return adviceHealthMild, true
	default:
		return adviceHealthGood, true
	}
}

func diseaseRiskRule(s SignalSummary) (string, bool) {
	if s.WeatherLive && s.HighHumidityRain {
		return adviceDiseaseRisk, true
	}
	return "", false
}

func heatRule(s SignalSummary) (string, bool) {
	if s.WeatherLive && s.HighHeat {
		return adviceHeatAdvisory, true
	}
	return "", false
}

func weatherOfflineRule(s SignalSummary) (string, bool) {
	if !s.WeatherLive {
		return adviceWeatherOffline, true
	}
	return "", false
}

func weedRule(s SignalSummary) (string, bool) {
	if s.WeedPressure {
		return adviceWeedControl, true
	}
	return "", false
}

func marketRule(s SignalSummary) (string, bool) {
	return adviceMarketPrefix + s.MarketText, true
}
