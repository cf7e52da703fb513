package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"go.uber.org/zap"

	"github.com/shiptrain/portal/internal/models"
	apperrors "github.com/shiptrain/portal/pkg/errors"
	"github.com/shiptrain/portal/pkg/logger"
)

type sampleDataset struct {
	filename string
	rows     [][]string
}

// MarketService serves resource samples as CSV downloads
type MarketService struct {
	samples map[string]sampleDataset
}

// NewMarketService creates a MarketService with the built-in sample datasets
func NewMarketService() *MarketService {
	return &MarketService{samples: builtinSamples()}
}

// Sample renders the sample of a resource. Unknown ids yield a not-found error.
func (s *MarketService) Sample(ctx context.Context, resourceID string) (*models.Sample, error) {
	ds, ok := s.samples[resourceID]
	if !ok {
		return nil, apperrors.NotFoundError(fmt.Sprintf("sample %s", resourceID))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(ds.rows); err != nil {
		logger.Error("Failed to render sample",
			zap.String("resource_id", resourceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to render sample %s: %w", resourceID, err)
	}

	return &models.Sample{
		Filename:    ds.filename,
		ContentType: "text/csv; charset=utf-8",
		Content:     buf.Bytes(),
	}, nil
}

func builtinSamples() map[string]sampleDataset {
	return map[string]sampleDataset{
		"1": {
			filename: "vessel-positions-sample.csv",
			rows: [][]string{
				{"mmsi", "timestamp", "lat", "lon", "speed_knots"},
				{"413000001", "2024-12-20T08:00:00Z", "31.2304", "121.4737", "12.4"},
				{"413000001", "2024-12-20T08:05:00Z", "31.2411", "121.4902", "12.1"},
				{"413000002", "2024-12-20T08:00:00Z", "30.6280", "122.0645", "9.8"},
			},
		},
		"2": {
			filename: "engine-sensor-sample.csv",
			rows: [][]string{
				{"sensor_id", "timestamp", "temperature_c", "rpm"},
				{"ENG-01", "2024-12-20T08:00:00Z", "78.5", "1450"},
				{"ENG-01", "2024-12-20T08:01:00Z", "79.1", "1462"},
			},
		},
		"3": {
			filename: "port-calls-sample.csv",
			rows: [][]string{
				{"port", "vessel", "arrival", "departure"},
				{"Shanghai", "Ocean Star", "2024-12-18", "2024-12-20"},
				{"Ningbo", "Sea Pioneer", "2024-12-19", "2024-12-21"},
			},
		},
	}
}
