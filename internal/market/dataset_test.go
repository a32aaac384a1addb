package market

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	apperrors "farm-manager/internal/errors"
)

const sampleCSV = `Price Date,Modal Price,Commodity,Market
01-01-2024,2000,Wheat,Adilabad
02-01-2024,2050,Wheat,Adilabad
bad-date,2100,Wheat,Adilabad
03-01-2024,not-a-number,Wheat,Adilabad
04-01-2024,-50,Wheat,Adilabad
05-01-2024,2200,,Adilabad
06-01-2024,2300,Wheat,
07-01-2024,1800,Cotton,Warangal
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daily_price.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestLoadDatasetDropsUnparsableRows(t *testing.T) {
	path := writeDataset(t, sampleCSV)

	points, err := LoadDataset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the two clean Wheat rows and the Cotton row survive.
	if len(points) != 3 {
		t.Fatalf("expected 3 clean rows, got %d", len(points))
	}
	for _, p := range points {
		if p.Price <= 0 || p.Commodity == "" || p.Market == "" || p.Date.IsZero() {
			t.Errorf("cleaned row violates invariants: %+v", p)
		}
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}

	var loadErr *apperrors.DataLoadError
	if !apperrors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %T", err)
	}
}

func TestLoadDatasetEmptyFile(t *testing.T) {
	path := writeDataset(t, "")

	_, err := LoadDataset(path)
	if err == nil {
		t.Fatal("expected an error for an empty file")
	}

	var loadErr *apperrors.DataLoadError
	if !apperrors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %T", err)
	}
}

func TestDatasetCacheSingleInitialization(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	cache := NewDatasetCache()

	const goroutines = 16
	results := make([][]int, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			points, err := cache.Get(path)
			if err != nil {
				results[i] = nil
				return
			}
			results[i] = []int{len(points)}
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r == nil || r[0] != 3 {
			t.Fatalf("goroutine %d: expected 3 cached rows, got %v", i, r)
		}
	}

	// Deleting the file must not disturb the cached entry.
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing dataset: %v", err)
	}
	points, err := cache.Get(path)
	if err != nil || len(points) != 3 {
		t.Fatalf("expected cached rows after file removal, got %d rows, err %v", len(points), err)
	}
}

func TestDatasetCacheInvalidate(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	cache := NewDatasetCache()

	if _, err := cache.Get(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cache.Invalidate(path)
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing dataset: %v", err)
	}

	if _, err := cache.Get(path); err == nil {
		t.Fatal("expected a reload failure after invalidation")
	}
}
