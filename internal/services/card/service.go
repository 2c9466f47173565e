// Package card owns the card records: it is the only writer of the card
// store and enforces the field invariants on every create and update.
package card

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	apperrors "cardlink/internal/errors"
	"cardlink/internal/metrics"
	"cardlink/internal/models"
	"cardlink/internal/repositories"
	"cardlink/internal/storage"
	"cardlink/internal/validation"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// storageTimeout bounds every photo-storage call so a hung backend cannot
// wedge a request.
const storageTimeout = 10 * time.Second

// allowedPhotoExtensions are the accepted upload formats.
var allowedPhotoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// PhotoUpload is an uploaded photo passed through from the multipart form.
type PhotoUpload struct {
	Filename string
	Reader   io.Reader
}

type Service interface {
	Create(ctx context.Context, input models.CardInput, photo *PhotoUpload) (*models.Card, error)
	Get(ctx context.Context, id string) (*models.Card, error)
	List(ctx context.Context) ([]*models.Card, error)
	Update(ctx context.Context, id string, input models.CardInput, photo *PhotoUpload) (*models.Card, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   repositories.CardRepository
	scans  repositories.ScanRepository
	photos storage.Storage
}

func NewService(repo repositories.CardRepository, scans repositories.ScanRepository, photos storage.Storage) Service {
	return &service{
		repo:   repo,
		scans:  scans,
		photos: photos,
	}
}

func (s *service) Create(ctx context.Context, input models.CardInput, photo *PhotoUpload) (*models.Card, error) {
	card := &models.Card{
		ID:        uuid.NewString(),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	applyInput(card, input)
	normalize(card)

	if err := validate(card); err != nil {
		return nil, err
	}

	// Photo first: a storage failure aborts the whole create so no card is
	// ever persisted with a dangling photo reference.
	if photo != nil {
		path, err := s.storePhoto(ctx, card.ID, photo)
		if err != nil {
			return nil, err
		}
		card.PhotoPath = path
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	metrics.CardWritesTotal.WithLabelValues("create").Inc()
	s.refreshCardGauge(ctx)
	log.Infof("card created: %s (%s)", card.ID, card.DisplayName())
	return card, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Card, error) {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The count is derived from the event log on every read.
	count, err := s.scans.CountByCard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}
	card.ScanCount = count
	return card, nil
}

func (s *service) List(ctx context.Context) ([]*models.Card, error) {
	cards, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	counts, err := s.scans.CountsPerCard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}
	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.CardID] = c.ScanCount
	}
	for _, card := range cards {
		card.ScanCount = byID[card.ID]
	}
	return cards, nil
}

func (s *service) Update(ctx context.Context, id string, input models.CardInput, photo *PhotoUpload) (*models.Card, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the merged record before touching photo storage: a rejected
	// update must leave both the row and the old photo blob as they were.
	merged := *existing
	applyInput(&merged, input)
	normalize(&merged)
	if err := validate(&merged); err != nil {
		return nil, err
	}

	// Store the replacement photo before touching the card row; if storage
	// is down the record stays as it was.
	var newPhotoPath string
	if photo != nil {
		newPhotoPath, err = s.storePhoto(ctx, id, photo)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, func(card *models.Card) error {
		applyInput(card, input)
		normalize(card)
		if newPhotoPath != "" {
			card.PhotoPath = newPhotoPath
		}
		return validate(card)
	})
	if err != nil {
		return nil, err
	}

	if newPhotoPath != "" && existing.PhotoPath != "" && existing.PhotoPath != newPhotoPath {
		s.removePhoto(existing.PhotoPath)
	}

	count, err := s.scans.CountByCard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count scans: %w", err)
	}
	updated.ScanCount = count

	metrics.CardWritesTotal.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if card.PhotoPath != "" {
		s.removePhoto(card.PhotoPath)
	}

	metrics.CardWritesTotal.WithLabelValues("delete").Inc()
	s.refreshCardGauge(ctx)
	log.Infof("card deleted: %s", id)
	return nil
}

// refreshCardGauge re-reads the card count after a write. Best effort; the
// gauge catches up on the next write if the count fails.
func (s *service) refreshCardGauge(ctx context.Context) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		log.Warnf("failed to count cards: %v", err)
		return
	}
	metrics.CardsTotal.Set(float64(n))
}

// storePhoto writes the upload under "<cardID><ext>" and returns the
// reference. The extension is checked here so a bad upload is reported as a
// validation problem, not a storage one.
func (s *service) storePhoto(ctx context.Context, cardID string, photo *PhotoUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(photo.Filename))
	if !allowedPhotoExtensions[ext] {
		return "", &apperrors.ValidationError{Fields: map[string]string{
			"photo": "must be a png, jpg, jpeg or webp file",
		}}
	}

	name := cardID + ext
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	if err := s.photos.Put(ctx, name, photo.Reader); err != nil {
		log.Errorf("photo storage failed for card %s: %v", cardID, err)
		return "", apperrors.ErrUpstreamFailure
	}
	return name, nil
}

// removePhoto is best-effort cleanup; the card row is already consistent.
func (s *service) removePhoto(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	if err := s.photos.Delete(ctx, name); err != nil {
		log.Warnf("failed to delete photo %s: %v", name, err)
	}
}

// applyInput merges the supplied fields; absent fields keep prior values.
func applyInput(card *models.Card, input models.CardInput) {
	if input.FirstName != nil {
		card.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		card.LastName = *input.LastName
	}
	if input.Email != nil {
		card.Email = *input.Email
	}
	if input.Phone != nil {
		card.Phone = *input.Phone
	}
	if input.Company != nil {
		card.Company = *input.Company
	}
	if input.Position != nil {
		card.Position = *input.Position
	}
	if input.Website != nil {
		card.Website = *input.Website
	}
	if input.IsActive != nil {
		card.IsActive = *input.IsActive
	}
}

func normalize(card *models.Card) {
	card.FirstName = strings.TrimSpace(card.FirstName)
	card.LastName = strings.TrimSpace(card.LastName)
	card.Email = strings.TrimSpace(card.Email)
	card.Phone = strings.TrimSpace(card.Phone)
	card.Company = strings.TrimSpace(card.Company)
	card.Position = strings.TrimSpace(card.Position)
	card.Website = strings.TrimSpace(card.Website)
}

func validate(card *models.Card) error {
	v := validation.New()
	v.Required("first_name", card.FirstName)
	v.Required("last_name", card.LastName)
	v.Required("email", card.Email)
	v.Required("company", card.Company)
	v.Required("position", card.Position)
	if card.Email != "" {
		v.Email("email", card.Email)
	}
	if card.Website != "" {
		v.AbsoluteURL("website", card.Website)
	}
	v.MaxLength("first_name", card.FirstName, 100)
	v.MaxLength("last_name", card.LastName, 100)
	v.MaxLength("email", card.Email, 255)
	v.MaxLength("phone", card.Phone, 50)
	v.MaxLength("company", card.Company, 255)
	v.MaxLength("position", card.Position, 255)
	v.MaxLength("website", card.Website, 500)

	if !v.Valid() {
		return &apperrors.ValidationError{Fields: v.Errors}
	}
	return nil
}
