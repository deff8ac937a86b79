package sheets

import (
	"context"

	"purse/internal/core"
)

// Ports for outbound adapters.
type (
	// WeekLogWriter appends plan events to an external week log.
	WeekLogWriter interface {
		AppendWeekLog(ctx context.Context, entry core.WeekLogEntry) (rowRef string, err error)
	}
)
