package repositories

import (
	"context"
	"errors"

	apperrors "cardlink/internal/errors"
	"cardlink/internal/models"
	"cardlink/internal/repositories/cache"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cardRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewCardRepository creates a new instance of CardRepository.
func NewCardRepository(db *gorm.DB, cache *cache.CacheService) CardRepository {
	return &cardRepository{
		db:    db,
		cache: cache,
	}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return err
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	if card, ok := r.cache.GetCard(ctx, id); ok {
		return card, nil
	}

	var card models.Card
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, err
	}

	if err := r.cache.CacheCard(ctx, &card); err != nil {
		log.Warnf("failed to cache card %s: %v", id, err)
	}
	return &card, nil
}

func (r *cardRepository) List(ctx context.Context) ([]*models.Card, error) {
	var cards []*models.Card
	// Stable ordering: creation time descending, id breaks ties.
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) Update(ctx context.Context, id string, apply func(*models.Card) error) (*models.Card, error) {
	var updated *models.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.Card
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&card, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCardNotFound
			}
			return err
		}

		if err := apply(&card); err != nil {
			return err
		}

		if err := tx.Save(&card).Error; err != nil {
			return err
		}
		updated = &card
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.cache.InvalidateCard(ctx, id); err != nil {
		log.Warnf("failed to invalidate cached card %s: %v", id, err)
	}
	return updated, nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cascade: a deleted card takes its scan history with it.
		if err := tx.Where("card_id = ?", id).Delete(&models.Scan{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Card{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrCardNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.cache.InvalidateCard(ctx, id); err != nil {
		log.Warnf("failed to invalidate cached card %s: %v", id, err)
	}
	return nil
}

func (r *cardRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Card{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
