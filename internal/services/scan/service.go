// Package scan records visits to a card's public link and classifies the
// visiting device. Events are append-only; every successful visit counts,
// with no deduplication by visitor.
package scan

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"cardlink/internal/metrics"
	"cardlink/internal/models"
	"cardlink/internal/repositories"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Record appends one scan event for the card. Fails when the card does
	// not exist; scans are never recorded against missing cards.
	Record(ctx context.Context, cardID, userAgent string) (models.DeviceType, error)
}

type service struct {
	cards repositories.CardRepository
	scans repositories.ScanRepository
}

func NewService(cards repositories.CardRepository, scans repositories.ScanRepository) Service {
	return &service{
		cards: cards,
		scans: scans,
	}
}

func (s *service) Record(ctx context.Context, cardID, userAgent string) (models.DeviceType, error) {
	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		return "", err
	}

	device := Classify(userAgent)
	event := &models.Scan{
		CardID:     cardID,
		ScannedAt:  time.Now().UTC(),
		UserAgent:  truncate(userAgent, 500),
		DeviceType: device,
	}

	if err := s.scans.Create(ctx, event); err != nil {
		return "", fmt.Errorf("failed to record scan: %w", err)
	}

	metrics.ScansRecordedTotal.WithLabelValues(string(device)).Inc()
	log.Debugf("scan recorded for card %s (%s)", cardID, device)
	return device, nil
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune;
// the column is UTF-8 and the database rejects a torn sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
