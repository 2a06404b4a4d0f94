package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"

	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

// DefaultSchedule is the unmodified schedule every new deployment starts
// with. All instances sharing it would hit the upstream rate quota at the
// same wall-clock minute, hence the one-time jitter below.
const DefaultSchedule = "*/15 * * * *"

// ScheduleAdjuster performs the run's cleanup step: stamp lastRun and, the
// first time the stored schedule still equals the known default, inject a
// random seconds offset. The mutation is guarded by exact string equality,
// so it happens at most once; any operator-customized schedule is left
// untouched.
type ScheduleAdjuster struct {
	Store  port.StateStore
	Logger *zap.Logger

	// Now and RandInt exist for tests; nil means the real clock and rand.
	Now     func() time.Time
	RandInt func(n int) int
}

func (s *ScheduleAdjuster) Adjust(ctx context.Context, site domain.SiteContext) error {
	meta, err := s.Store.ReadInstanceMetadata(ctx, site)
	if err != nil {
		return err
	}
	if meta == nil {
		meta = &domain.InstanceMetadata{Schedule: DefaultSchedule}
	}

	if meta.Schedule == DefaultSchedule {
		offset := s.randInt(60)
		next := fmt.Sprintf("%d */15 * * * *", offset)
		if _, err := quartz.NewCronTrigger(next); err != nil {
			return fmt.Errorf("generated invalid schedule %q: %w", next, err)
		}
		s.Logger.Info("spreading poll schedule", zap.String("schedule", next))
		meta.Schedule = next
	}

	meta.LastRun = s.now()
	return s.Store.WriteInstanceMetadata(ctx, site, *meta)
}

func (s *ScheduleAdjuster) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *ScheduleAdjuster) randInt(n int) int {
	if s.RandInt != nil {
		return s.RandInt(n)
	}
	return rand.Intn(n)
}
