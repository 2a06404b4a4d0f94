package service

import (
	"context"

	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"

	"go.uber.org/zap"
)

// Publisher writes value updates into the store. Writes are per-key and
// independent: a failed key is logged and skipped, the rest of the batch
// still goes through, so a partial publication leaves the store stale but
// never corrupt.
type Publisher struct {
	Store     port.StateStore
	Announcer port.Announcer // optional
	Logger    *zap.Logger
}

// PublishAll pushes each update through the store's change-suppressing
// write. Only values that actually changed are announced downstream.
func (p *Publisher) PublishAll(ctx context.Context, site domain.SiteContext, updates []domain.ValueUpdate) {
	for _, u := range updates {
		changed, err := p.Store.WriteIfChanged(ctx, site, u.Key, u.Value, true)
		if err != nil {
			p.Logger.Error("state write failed", zap.String("key", u.Key), zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		p.Logger.Debug("state updated", zap.String("key", u.Key))
		if p.Announcer != nil {
			if err := p.Announcer.Announce(u.Key, u.Value); err != nil {
				p.Logger.Warn("change announce failed", zap.String("key", u.Key), zap.Error(err))
			}
		}
	}
}
