package repositories

import (
	"context"

	"cardlink/internal/models"
)

// CardRepository defines the interface for card persistence. It is the sole
// writer of card rows.
type CardRepository interface {
	// Create inserts a new card.
	Create(ctx context.Context, card *models.Card) error

	// GetByID retrieves a card by its public identifier.
	GetByID(ctx context.Context, id string) (*models.Card, error)

	// List returns all cards, most recently created first.
	List(ctx context.Context) ([]*models.Card, error)

	// Update row-locks the card, applies the mutation and saves the result.
	// Concurrent updates to the same id serialize on the lock.
	Update(ctx context.Context, id string, apply func(*models.Card) error) (*models.Card, error)

	// Delete removes the card and all of its scans in one transaction.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored cards.
	Count(ctx context.Context) (int64, error)
}
