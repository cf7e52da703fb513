package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptrain/portal/internal/services"
	apperrors "github.com/shiptrain/portal/pkg/errors"
)

func TestMarketService_Sample(t *testing.T) {
	service := services.NewMarketService()

	sample, err := service.Sample(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "vessel-positions-sample.csv", sample.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", sample.ContentType)

	lines := strings.Split(strings.TrimSpace(string(sample.Content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "mmsi,timestamp,lat,lon,speed_knots", lines[0])
}

func TestMarketService_UnknownSample(t *testing.T) {
	service := services.NewMarketService()

	sample, err := service.Sample(context.Background(), "404")
	assert.Nil(t, sample)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
