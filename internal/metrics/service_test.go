package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestService_RecordsLabelledMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncTeamsFormed(3)
	svc.IncTeamsFormed(3)
	svc.IncTeamsFormed(5)
	svc.IncMatchesFormed(3)
	svc.SetQueueDepth(QueueUsers, 7)
	svc.IncCorruptedRecords()

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.TeamsFormed.WithLabelValues("3")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.TeamsFormed.WithLabelValues("5")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.MatchesFormed.WithLabelValues("3")))
	assert.Equal(t, 7.0, testutil.ToFloat64(svc.QueueDepth.WithLabelValues(QueueUsers)))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.CorruptedRecords))
}

func TestService_ObserveCycleDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.ObserveCycleDuration(CycleTeamBuild, 0.002)
	svc.ObserveCycleDuration(CycleMatchBuild, 0.004)

	assert.Equal(t, 2, testutil.CollectAndCount(svc.CycleDuration))
}
