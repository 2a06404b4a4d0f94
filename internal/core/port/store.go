package port

import (
	"context"

	"github.com/solsync/solaredge2state/internal/core/domain"
)

// StateStore is the durable typed state store this program publishes into.
// All operations may fail with a transport/IO error.
type StateStore interface {
	// Exists reports whether the data point is already declared for the
	// site.
	Exists(ctx context.Context, site domain.SiteContext, key string) (bool, error)
	// Declare (re-)creates a data-point definition. Declaring an existing
	// data point must not alter or reset its last value.
	Declare(ctx context.Context, site domain.SiteContext, def domain.DataPointDefinition) error
	// WriteIfChanged stores a value unless it equals the currently stored
	// one, and reports whether a write actually happened. Values written
	// by this program are always acknowledgements of externally-sourced
	// truth (ack=true).
	WriteIfChanged(ctx context.Context, site domain.SiteContext, key string, value any, ack bool) (bool, error)
	// ReadInstanceMetadata returns nil without error when no metadata has
	// been written yet.
	ReadInstanceMetadata(ctx context.Context, site domain.SiteContext) (*domain.InstanceMetadata, error)
	WriteInstanceMetadata(ctx context.Context, site domain.SiteContext, meta domain.InstanceMetadata) error
}
