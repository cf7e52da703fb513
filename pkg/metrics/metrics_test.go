package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardDecisionsCounter(t *testing.T) {
	before := testutil.ToFloat64(GuardDecisions.WithLabelValues("training", "allowed"))
	GuardDecisions.WithLabelValues("training", "allowed").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(GuardDecisions.WithLabelValues("training", "allowed")))
}

func TestRegistryGathers(t *testing.T) {
	APIClientRequestTotal.WithLabelValues("market", "GET", "success").Inc()

	families, err := Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["portal_api_client_request_total"])
}

func TestMeasureDuration(t *testing.T) {
	start := time.Now().Add(-2 * time.Second)
	assert.GreaterOrEqual(t, MeasureDuration(start), 2.0)
}
