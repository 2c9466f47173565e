package repositories

import (
	"context"
	"time"

	"cardlink/internal/models"
)

// ScanRepository defines the interface for scan-event persistence and the
// aggregate queries the stats service derives from. It is the sole writer of
// scan rows; counts are always computed from the rows, never stored.
type ScanRepository interface {
	// Create appends one scan event.
	Create(ctx context.Context, scan *models.Scan) error

	// CountAll returns the total number of scan events.
	CountAll(ctx context.Context) (int64, error)

	// CountByCard returns the number of scan events for one card.
	CountByCard(ctx context.Context, cardID string) (int64, error)

	// CountsPerCard returns one row per existing card with its scan count,
	// ordered by count descending then card id ascending.
	CountsPerCard(ctx context.Context) ([]models.CardScanCount, error)

	// CountsByDevice groups scan counts by device category. An empty cardID
	// covers all cards.
	CountsByDevice(ctx context.Context, cardID string) (map[models.DeviceType]int64, error)

	// CountsByDay groups scan counts by UTC calendar day since the given
	// instant. An empty cardID covers all cards. Days without scans are
	// absent from the result; callers zero-fill.
	CountsByDay(ctx context.Context, since time.Time, cardID string) (map[string]int64, error)
}
