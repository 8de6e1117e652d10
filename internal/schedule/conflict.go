package schedule

import (
	"context"
	"fmt"
	"time"

	"appointment-scheduler/internal/repository"
)

// HasConflict reports whether [start, end) intersects any appointment of
// ownerID other than excludeID. Ranges that merely touch do not conflict,
// and an empty or inverted candidate occupies no time so it never
// conflicts.
func HasConflict(ctx context.Context, f repository.OverlapFinder, ownerID string, start, end time.Time, excludeID string) (bool, error) {
	if !end.After(start) {
		return false, nil
	}
	dup, err := f.HasOverlap(ctx, ownerID, start, end, excludeID)
	if err != nil {
		return false, fmt.Errorf("overlap query: %w", err)
	}
	return dup, nil
}
