// Package agents provides the advisory agents and their orchestration.
package agents

import (
	"farm-manager/internal/models"
)

// QueryRequest carries one farmer query through the pipeline. Field and
// Health come from the external perception collaborators; Crop and City
// are plain user inputs.
type QueryRequest struct {
	Crop   string
	City   string
	Field  models.FieldAssessment
	Health models.HealthAssessment
}

// Recommendation texts derived from the forecast decision on the
// fallback path. The live feed ships its own decision text instead.
const (
	TextWait        = "WAIT – Prices likely to increase"
	TextSell        = "SELL NOW – Prices may fall"
	TextUnavailable = "SELL / WAIT unavailable (insufficient data)"
)

// DecisionText maps a forecast decision to its user-facing text.
func DecisionText(d models.Decision) string {
	switch d {
	case models.DecisionWait:
		return TextWait
	case models.DecisionSell:
		return TextSell
	default:
		return TextUnavailable
	}
}
