package market

import (
	"strings"

	apperrors "farm-manager/internal/errors"
	"farm-manager/internal/models"
)

// SelectBestMandi picks the market with the highest most-recent price
// for the given crop. Matching on commodity is case-insensitive. For
// each market the chronologically latest observation counts; when two
// observations share a date the later row in input order wins. Ties on
// price resolve to the market encountered first in input order, so the
// choice is reproducible for identical input ordering.
func SelectBestMandi(points []models.PricePoint, crop string) (models.MandiChoice, error) {
	want := strings.ToLower(strings.TrimSpace(crop))

	latest := make(map[string]models.PricePoint)
	var order []string

	for _, p := range points {
		if strings.ToLower(p.Commodity) != want {
			continue
		}
		cur, seen := latest[p.Market]
		if !seen {
			order = append(order, p.Market)
			latest[p.Market] = p
			continue
		}
		if !p.Date.Before(cur.Date) {
			latest[p.Market] = p
		}
	}

	if len(order) == 0 {
		return models.MandiChoice{}, apperrors.NewCropNotFoundError(crop)
	}

	best := latest[order[0]]
	for _, m := range order[1:] {
		if latest[m].Price > best.Price {
			best = latest[m]
		}
	}

	return models.MandiChoice{Market: best.Market, LatestPrice: best.Price}, nil
}
