package service

import (
	"context"
	"errors"

	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"
	"github.com/solsync/solaredge2state/internal/util/taskutil"

	"go.uber.org/zap"
)

// Runner executes one full polling pass, strictly sequential:
// reconcile -> fetch overview -> publish -> fetch power flow -> publish ->
// adjust own schedule. There is no fan-out; request volume is deliberately
// minimal because the upstream API enforces a rate quota.
//
// A failed fetch branch is contained: it skips that branch's values and the
// pass still reaches the schedule-adjustment step. Only configuration and
// schema failures abort the run.
type Runner struct {
	Site       domain.SiteContext
	Monitor    port.MonitorClient
	Reconciler *Reconciler
	Publisher  *Publisher
	Schedule   *ScheduleAdjuster
	Logger     *zap.Logger
}

func (r *Runner) Run(ctx context.Context) error {
	if err := r.Reconciler.Reconcile(ctx, r.Site); err != nil {
		r.Logger.Error("schema reconciliation failed", zap.Error(err))
		return err
	}

	r.overviewPass(ctx)

	if r.Site.HasPowerFlowFeature {
		r.powerFlowPass(ctx)
	}

	// cleanup step, attempted even when both fetch branches failed
	if err := r.Schedule.Adjust(ctx, r.Site); err != nil {
		r.Logger.Error("schedule adjustment failed", zap.Error(err))
	}
	return nil
}

func (r *Runner) overviewPass(ctx context.Context) {
	taskutil.New(func() (*domain.EnergyOverview, error) {
		return r.Monitor.GetOverview(ctx, r.Site.SiteID)
	}).OnError(func(err error) {
		r.logFetchError("overview", err)
	}).OnSuccess(func(ov domain.EnergyOverview) {
		r.Publisher.PublishAll(ctx, r.Site, OverviewValues(&ov))
	}).Run()
}

func (r *Runner) powerFlowPass(ctx context.Context) {
	taskutil.New(func() (*domain.PowerFlowGraph, error) {
		return r.Monitor.GetPowerFlow(ctx, r.Site.SiteID)
	}).OnError(func(err error) {
		r.logFetchError("currentPowerFlow", err)
	}).OnSuccess(func(graph domain.PowerFlowGraph) {
		r.Publisher.PublishAll(ctx, r.Site, Interpret(&graph))
	}).Run()
}

func (r *Runner) logFetchError(branch string, err error) {
	if errors.Is(err, domain.ErrMalformedResponse) {
		// 200 with the expected object missing: nothing to publish this
		// cycle, the next scheduled run will try again
		r.Logger.Warn("no usable payload this cycle",
			zap.String("branch", branch), zap.Error(err))
		return
	}
	r.Logger.Error("fetch failed, branch skipped",
		zap.String("branch", branch), zap.Error(err))
}
