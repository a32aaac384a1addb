// Package market provides mandi price sourcing, selection and forecasting.
package market

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	apperrors "farm-manager/internal/errors"
	"farm-manager/internal/models"
)

// datasetDateFormat matches the Agmarknet export format (day-month-year).
const datasetDateFormat = "02-01-2006"

// priceRow mirrors the raw columns of the Agmarknet daily price CSV.
// Fields are kept as strings so rows with unparsable values can be
// dropped individually instead of failing the whole load.
type priceRow struct {
	PriceDate  string `csv:"Price Date"`
	ModalPrice string `csv:"Modal Price"`
	Commodity  string `csv:"Commodity"`
	Market     string `csv:"Market"`
}

// LoadDataset parses the fallback price dataset at path into cleaned
// price points. Rows missing a valid date, positive price, commodity or
// market are silently dropped. Returns a DataLoadError if the file
// cannot be read or is not a parseable CSV.
func LoadDataset(path string) ([]models.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataLoadError(path, err)
	}
	defer f.Close()

	var rows []*priceRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.NewDataLoadError(path, err)
	}

	points := make([]models.PricePoint, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse(datasetDateFormat, strings.TrimSpace(r.PriceDate))
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(r.ModalPrice), 64)
		if err != nil || price <= 0 {
			continue
		}
		commodity := strings.TrimSpace(r.Commodity)
		mandi := strings.TrimSpace(r.Market)
		if commodity == "" || mandi == "" {
			continue
		}
		points = append(points, models.PricePoint{
			Date:      date,
			Commodity: commodity,
			Market:    mandi,
			Price:     price,
		})
	}

	return points, nil
}
