package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "cardlink/internal/errors"
	"cardlink/internal/models"

	"gorm.io/gorm"
)

type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository creates a new instance of ScanRepository.
func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Create(ctx context.Context, scan *models.Scan) error {
	if err := r.db.WithContext(ctx).Omit("Card").Create(scan).Error; err != nil {
		// The card was deleted between the existence check and the insert;
		// the foreign key rejects the orphan row.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperrors.ErrCardNotFound
		}
		return err
	}
	return nil
}

func (r *scanRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Scan{}).Count(&count).Error
	return count, err
}

func (r *scanRepository) CountByCard(ctx context.Context, cardID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Scan{}).
		Where("card_id = ?", cardID).
		Count(&count).Error
	return count, err
}

func (r *scanRepository) CountsPerCard(ctx context.Context) ([]models.CardScanCount, error) {
	var rows []models.CardScanCount
	// LEFT JOIN keeps cards with zero scans on the leaderboard.
	err := r.db.WithContext(ctx).
		Table("cards").
		Select("cards.id AS card_id, cards.first_name || ' ' || cards.last_name AS card_name, COUNT(scans.id) AS scan_count").
		Joins("LEFT JOIN scans ON scans.card_id = cards.id").
		Group("cards.id, cards.first_name, cards.last_name").
		Order("scan_count DESC").
		Order("cards.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scanRepository) CountsByDevice(ctx context.Context, cardID string) (map[models.DeviceType]int64, error) {
	type row struct {
		DeviceType models.DeviceType
		Count      int64
	}
	q := r.db.WithContext(ctx).
		Model(&models.Scan{}).
		Select("device_type, COUNT(*) AS count").
		Group("device_type")
	if cardID != "" {
		q = q.Where("card_id = ?", cardID)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.DeviceType]int64, len(rows))
	for _, r := range rows {
		counts[r.DeviceType] = r.Count
	}
	return counts, nil
}

func (r *scanRepository) CountsByDay(ctx context.Context, since time.Time, cardID string) (map[string]int64, error) {
	type row struct {
		Day   string
		Count int64
	}
	q := r.db.WithContext(ctx).
		Model(&models.Scan{}).
		Select("to_char(scanned_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("scanned_at >= ?", since).
		Group("day")
	if cardID != "" {
		q = q.Where("card_id = ?", cardID)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Day] = r.Count
	}
	return counts, nil
}
