// Package stats derives aggregate scan statistics at read time. Nothing is
// cached or pre-counted, so the numbers can never drift from the event log;
// deleted cards contribute nothing because their events are cascaded away.
package stats

import (
	"context"
	"fmt"
	"time"

	"cardlink/internal/models"
	"cardlink/internal/repositories"
)

// windowDays is the trailing calendar window of the daily series.
const windowDays = 30

type Service interface {
	// Global computes the summary across all existing cards.
	Global(ctx context.Context) (*models.Summary, error)

	// ForCard computes the summary scoped to one card.
	ForCard(ctx context.Context, cardID string) (*models.Summary, error)
}

type service struct {
	cards repositories.CardRepository
	scans repositories.ScanRepository
	now   func() time.Time
}

func NewService(cards repositories.CardRepository, scans repositories.ScanRepository) Service {
	return &service{
		cards: cards,
		scans: scans,
		now:   time.Now,
	}
}

func (s *service) Global(ctx context.Context) (*models.Summary, error) {
	total, err := s.scans.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}

	perCard, err := s.scans.CountsPerCard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans per card: %w", err)
	}

	byDevice, byDay, err := s.breakdowns(ctx, "")
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		TotalScans:    total,
		ScansByDay:    byDay,
		ScansByDevice: byDevice,
		Cards:         perCard,
	}, nil
}

func (s *service) ForCard(ctx context.Context, cardID string) (*models.Summary, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	total, err := s.scans.CountByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}

	byDevice, byDay, err := s.breakdowns(ctx, cardID)
	if err != nil {
		return nil, err
	}

	return &models.Summary{
		TotalScans:    total,
		ScansByDay:    byDay,
		ScansByDevice: byDevice,
		CardName:      card.DisplayName(),
	}, nil
}

func (s *service) breakdowns(ctx context.Context, cardID string) (map[models.DeviceType]int64, []models.DayCount, error) {
	deviceCounts, err := s.scans.CountsByDevice(ctx, cardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count scans by device: %w", err)
	}
	byDevice := make(map[models.DeviceType]int64, len(models.DeviceTypes))
	for _, d := range models.DeviceTypes {
		byDevice[d] = deviceCounts[d]
	}

	start := s.windowStart()
	dayCounts, err := s.scans.CountsByDay(ctx, start, cardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count scans by day: %w", err)
	}

	// One entry per calendar day, zero-filled, ascending.
	byDay := make([]models.DayCount, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		byDay = append(byDay, models.DayCount{Date: date, Count: dayCounts[date]})
	}
	return byDevice, byDay, nil
}

// windowStart is midnight UTC of the first day in the trailing window, so
// the series spans today back 29 days inclusive.
func (s *service) windowStart() time.Time {
	today := s.now().UTC().Truncate(24 * time.Hour)
	return today.AddDate(0, 0, -(windowDays - 1))
}
