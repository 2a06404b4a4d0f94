package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/solsync/solaredge2state/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOverview() *domain.EnergyOverview {
	return &domain.EnergyOverview{
		LastUpdateTime: "2025-06-01 12:00:00",
		CurrentPower:   2100,
		LastDayEnergy:  9000,
	}
}

func testGraph() *domain.PowerFlowGraph {
	return domain.NewPowerFlowGraph("kW", map[string]domain.PowerFlowNode{
		"GRID": {CurrentPower: 0.4, Status: "Active"},
		"LOAD": {CurrentPower: 1.7, Status: "Active"},
		"PV":   {CurrentPower: 2.1, Status: "Active"},
	}, []domain.Connection{
		{From: "Load", To: "Grid"},
	})
}

func newTestRunner(site domain.SiteContext, store *fakeStore, monitor *fakeMonitor) *Runner {
	logger := zap.NewNop()
	return &Runner{
		Site:       site,
		Monitor:    monitor,
		Reconciler: &Reconciler{Store: store, Logger: logger},
		Publisher:  &Publisher{Store: store, Logger: logger},
		Schedule:   &ScheduleAdjuster{Store: store, Logger: logger},
		Logger:     logger,
	}
}

func TestRunPublishesBothBranches(t *testing.T) {

	store := newFakeStore()
	monitor := &fakeMonitor{overview: testOverview(), graph: testGraph()}
	runner := newTestRunner(flowSite(), store, monitor)

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, 1, monitor.overviewCalls)
	assert.Equal(t, 1, monitor.flowCalls)
	assert.Len(t, store.writeCalls, len(domain.ActiveCatalog(flowSite())))
	assert.Contains(t, store.writeCalls, domain.DP_CURRENT_POWER)
	assert.Contains(t, store.writeCalls, domain.DP_FEED_TO_GRID)
}

func TestRunSkipsFlowWhenFeatureDisabled(t *testing.T) {

	store := newFakeStore()
	monitor := &fakeMonitor{overview: testOverview(), graph: testGraph()}
	runner := newTestRunner(baseSite(), store, monitor)

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, 0, monitor.flowCalls)
	assert.NotContains(t, store.writeCalls, domain.DP_FEED_TO_GRID)
}

func TestRunIsolatesPowerFlowTransportFailure(t *testing.T) {

	store := newFakeStore()
	monitor := &fakeMonitor{
		overview: testOverview(),
		graphErr: &domain.TransportError{Endpoint: "/site/12345/currentPowerFlow.json", Status: 429},
	}
	runner := newTestRunner(flowSite(), store, monitor)

	// the run still exits cleanly
	require.NoError(t, runner.Run(context.Background()))

	// overview values already published remain, flow values are skipped
	assert.Contains(t, store.writeCalls, domain.DP_CURRENT_POWER)
	assert.NotContains(t, store.writeCalls, domain.DP_FEED_TO_GRID)

	// the cleanup step was still attempted
	assert.NotNil(t, store.meta)
}

func TestRunIsolatesOverviewTransportFailure(t *testing.T) {

	store := newFakeStore()
	monitor := &fakeMonitor{
		overviewErr: &domain.TransportError{Endpoint: "/site/12345/overview.json", Err: errors.New("timeout")},
		graph:       testGraph(),
	}
	runner := newTestRunner(flowSite(), store, monitor)

	require.NoError(t, runner.Run(context.Background()))

	assert.NotContains(t, store.writeCalls, domain.DP_CURRENT_POWER)
	assert.Contains(t, store.writeCalls, domain.DP_FEED_TO_GRID)
}

func TestRunMalformedOverviewPublishesNothingThatCycle(t *testing.T) {

	store := newFakeStore()
	monitor := &fakeMonitor{
		overviewErr: fmt.Errorf("/site/12345/overview.json: %w", domain.ErrMalformedResponse),
	}
	runner := newTestRunner(baseSite(), store, monitor)

	require.NoError(t, runner.Run(context.Background()))

	assert.Empty(t, store.writeCalls)
	assert.NotNil(t, store.meta)
}

func TestRunAbortsOnSchemaError(t *testing.T) {

	store := newFakeStore()
	store.existsErr = &domain.SchemaError{Op: "exists", Key: domain.DP_CURRENT_POWER, Err: errors.New("store down")}
	monitor := &fakeMonitor{overview: testOverview()}
	runner := newTestRunner(baseSite(), store, monitor)

	err := runner.Run(context.Background())
	require.Error(t, err)

	// no fetch happens once reconciliation failed
	assert.Equal(t, 0, monitor.overviewCalls)
	assert.Nil(t, store.meta)
}
