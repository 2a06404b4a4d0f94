package service

import (
	"context"

	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"

	"go.uber.org/zap"
)

// Reconciler brings the store's declared schema in line with the active
// catalog before any value is written. It is idempotent and at-least-once
// safe: the existence ledger is rebuilt from the store on every run, so it
// stays correct after external deletion of data points.
type Reconciler struct {
	Store  port.StateStore
	Logger *zap.Logger
}

// Reconcile checks every entry of the active catalog and, as soon as any
// entry is missing, (re-)declares the whole catalog. Declaration is
// idempotent and never resets a stored value, so bulk re-declare is safe.
// When all entries exist no declaration call is made at all, which is the
// common path given the polling frequency.
//
// A failed existence check or declaration aborts the run; the next
// scheduled invocation retries from a fresh ledger.
func (r *Reconciler) Reconcile(ctx context.Context, site domain.SiteContext) error {
	catalog := domain.ActiveCatalog(site)

	missing := 0
	for _, def := range catalog {
		ok, err := r.Store.Exists(ctx, site, def.Key)
		if err != nil {
			return err
		}
		if !ok {
			missing++
		}
	}

	if missing == 0 {
		r.Logger.Debug("schema up to date", zap.Int("dataPoints", len(catalog)))
		return nil
	}

	r.Logger.Info("declaring data points",
		zap.Int("missing", missing),
		zap.Int("dataPoints", len(catalog)))
	for _, def := range catalog {
		if err := r.Store.Declare(ctx, site, def); err != nil {
			return err
		}
	}
	return nil
}
