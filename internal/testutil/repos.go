// Package testutil provides in-memory repository and storage fakes for
// service tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "cardlink/internal/errors"
	"cardlink/internal/models"
)

// FakeCardRepo is an in-memory CardRepository. Update serializes through
// the mutex, matching the row-lock contract of the real implementation.
type FakeCardRepo struct {
	mu        sync.Mutex
	Cards     map[string]*models.Card
	CreateErr error
	UpdateErr error

	scans *FakeScanRepo
}

func NewFakeCardRepo() *FakeCardRepo {
	return &FakeCardRepo{Cards: make(map[string]*models.Card)}
}

func (r *FakeCardRepo) Create(ctx context.Context, card *models.Card) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *card
	r.Cards[card.ID] = &cp
	return nil
}

func (r *FakeCardRepo) GetByID(ctx context.Context, id string) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.Cards[id]
	if !ok {
		return nil, apperrors.ErrCardNotFound
	}
	cp := *card
	return &cp, nil
}

func (r *FakeCardRepo) List(ctx context.Context) ([]*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cards := make([]*models.Card, 0, len(r.Cards))
	for _, c := range r.Cards {
		cp := *c
		cards = append(cards, &cp)
	}
	sort.Slice(cards, func(i, j int) bool {
		if !cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
			return cards[i].CreatedAt.After(cards[j].CreatedAt)
		}
		return cards[i].ID > cards[j].ID
	})
	return cards, nil
}

func (r *FakeCardRepo) Update(ctx context.Context, id string, apply func(*models.Card) error) (*models.Card, error) {
	if r.UpdateErr != nil {
		return nil, r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.Cards[id]
	if !ok {
		return nil, apperrors.ErrCardNotFound
	}
	cp := *card
	if err := apply(&cp); err != nil {
		return nil, err
	}
	r.Cards[id] = &cp
	out := cp
	return &out, nil
}

// Delete removes the card and, like the transactional implementation, every
// scan recorded against it.
func (r *FakeCardRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.Cards[id]; !ok {
		r.mu.Unlock()
		return apperrors.ErrCardNotFound
	}
	delete(r.Cards, id)
	r.mu.Unlock()

	if r.scans != nil {
		r.scans.deleteByCard(id)
	}
	return nil
}

func (r *FakeCardRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.Cards)), nil
}

func (r *FakeCardRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Cards[id]
	return ok
}

// FakeScanRepo is an in-memory ScanRepository. It joins against a
// FakeCardRepo for the per-card leaderboard.
type FakeScanRepo struct {
	mu        sync.Mutex
	Scans     []models.Scan
	Cards     *FakeCardRepo
	CreateErr error
}

func NewFakeScanRepo(cards *FakeCardRepo) *FakeScanRepo {
	r := &FakeScanRepo{Cards: cards}
	if cards != nil {
		cards.scans = r
	}
	return r
}

func (r *FakeScanRepo) Create(ctx context.Context, scan *models.Scan) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	// Mirror the foreign key on scans.card_id: an insert against a card
	// that no longer exists is rejected, not stored.
	if r.Cards != nil && !r.Cards.has(scan.CardID) {
		return apperrors.ErrCardNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	scan.ID = uint(len(r.Scans) + 1)
	r.Scans = append(r.Scans, *scan)
	return nil
}

func (r *FakeScanRepo) deleteByCard(cardID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.Scans[:0]
	for _, s := range r.Scans {
		if s.CardID != cardID {
			kept = append(kept, s)
		}
	}
	r.Scans = kept
}

func (r *FakeScanRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.Scans)), nil
}

func (r *FakeScanRepo) CountByCard(ctx context.Context, cardID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.Scans {
		if s.CardID == cardID {
			n++
		}
	}
	return n, nil
}

func (r *FakeScanRepo) CountsPerCard(ctx context.Context) ([]models.CardScanCount, error) {
	cards, err := r.Cards.List(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]models.CardScanCount, 0, len(cards))
	for _, c := range cards {
		var n int64
		for _, s := range r.Scans {
			if s.CardID == c.ID {
				n++
			}
		}
		rows = append(rows, models.CardScanCount{
			CardID:    c.ID,
			CardName:  c.DisplayName(),
			ScanCount: n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ScanCount != rows[j].ScanCount {
			return rows[i].ScanCount > rows[j].ScanCount
		}
		return rows[i].CardID < rows[j].CardID
	})
	return rows, nil
}

func (r *FakeScanRepo) CountsByDevice(ctx context.Context, cardID string) (map[models.DeviceType]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.DeviceType]int64)
	for _, s := range r.Scans {
		if cardID != "" && s.CardID != cardID {
			continue
		}
		counts[s.DeviceType]++
	}
	return counts, nil
}

func (r *FakeScanRepo) CountsByDay(ctx context.Context, since time.Time, cardID string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, s := range r.Scans {
		if cardID != "" && s.CardID != cardID {
			continue
		}
		if s.ScannedAt.Before(since) {
			continue
		}
		counts[s.ScannedAt.UTC().Format("2006-01-02")]++
	}
	return counts, nil
}
