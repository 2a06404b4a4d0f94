package port

import (
	"context"

	"github.com/solsync/solaredge2state/internal/core/domain"
)

// MonitorClient reads the cloud monitoring API for one site.
type MonitorClient interface {
	GetOverview(ctx context.Context, siteID string) (*domain.EnergyOverview, error)
	GetPowerFlow(ctx context.Context, siteID string) (*domain.PowerFlowGraph, error)
}
