package card

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "cardlink/internal/errors"
	"cardlink/internal/metrics"
	"cardlink/internal/models"
	"cardlink/internal/storage"
	"cardlink/internal/testutil"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validInput() models.CardInput {
	return models.CardInput{
		FirstName: strPtr("Ada"),
		LastName:  strPtr("Lovelace"),
		Email:     strPtr("ada@x.com"),
		Company:   strPtr("Analytical Engines"),
		Position:  strPtr("Engineer"),
	}
}

func newTestService() (Service, *testutil.FakeCardRepo, *testutil.FakeScanRepo, *storage.MemoryStorage) {
	cards := testutil.NewFakeCardRepo()
	scans := testutil.NewFakeScanRepo(cards)
	photos := storage.NewMemoryStorage()
	return NewService(cards, scans, photos), cards, scans, photos
}

func TestCreateThenGet(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	input := validInput()
	input.FirstName = strPtr("  Ada  ")
	input.Website = strPtr(" https://ada.example.com ")

	before := time.Now().UTC()
	created, err := s.Create(ctx, input, nil)
	require.NoError(t, err)

	// Fields come back trim-normalized with a fresh random id.
	assert.Equal(t, "Ada", created.FirstName)
	assert.Equal(t, "https://ada.example.com", created.Website)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.Before(before))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, int64(0), got.ScanCount)
}

func TestCreateReportsEveryViolation(t *testing.T) {
	s, repo, _, _ := newTestService()

	_, err := s.Create(context.Background(), models.CardInput{
		FirstName: strPtr("   "),
		LastName:  strPtr(""),
		Email:     strPtr("not-an-email"),
		Company:   strPtr("ACME"),
		Position:  strPtr(""),
		Website:   strPtr("relative/path"),
	}, nil)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "first_name")
	assert.Contains(t, verr.Fields, "last_name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "position")
	assert.Contains(t, verr.Fields, "website")
	assert.NotContains(t, verr.Fields, "company")

	// A failed create leaves the store unchanged.
	assert.Empty(t, repo.Cards)
}

func TestCreateWithPhoto(t *testing.T) {
	s, _, _, photos := newTestService()

	created, err := s.Create(context.Background(), validInput(), &PhotoUpload{
		Filename: "portrait.PNG",
		Reader:   strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID+".png", created.PhotoPath)
	assert.Equal(t, 1, photos.Len())
}

func TestCreateRejectsUnknownPhotoFormat(t *testing.T) {
	s, repo, _, _ := newTestService()

	_, err := s.Create(context.Background(), validInput(), &PhotoUpload{
		Filename: "malware.exe",
		Reader:   strings.NewReader("nope"),
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "photo")
	assert.Empty(t, repo.Cards)
}

// failingStorage errors on every call.
type failingStorage struct{}

func (failingStorage) Put(ctx context.Context, name string, r io.Reader) error {
	return errors.New("connection refused")
}
func (failingStorage) Get(ctx context.Context, name string, w io.Writer) error {
	return errors.New("connection refused")
}
func (failingStorage) Delete(ctx context.Context, name string) error {
	return errors.New("connection refused")
}

func TestCreateAbortsWhenPhotoStorageFails(t *testing.T) {
	cards := testutil.NewFakeCardRepo()
	scans := testutil.NewFakeScanRepo(cards)
	s := NewService(cards, scans, failingStorage{})

	_, err := s.Create(context.Background(), validInput(), &PhotoUpload{
		Filename: "portrait.png",
		Reader:   strings.NewReader("bytes"),
	})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
	assert.Empty(t, cards.Cards)
}

func TestUpdatePartial(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, models.CardInput{
		Phone: strPtr("+1 555 0100"),
	}, nil)
	require.NoError(t, err)

	// Absent fields keep prior values; identity never changes.
	assert.Equal(t, "+1 555 0100", updated.Phone)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestUpdateRevalidatesMergedRecord(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	_, err = s.Update(ctx, created.ID, models.CardInput{
		Email: strPtr("broken"),
	}, nil)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	// The stored record is untouched by the failed update.
	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", got.Email)
}

func TestRejectedUpdateKeepsOldPhoto(t *testing.T) {
	s, _, _, photos := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, validInput(), &PhotoUpload{
		Filename: "old.png",
		Reader:   strings.NewReader("old portrait bytes"),
	})
	require.NoError(t, err)

	// Same extension, so the replacement would land on the same blob name.
	_, err = s.Update(ctx, created.ID, models.CardInput{
		Email: strPtr("not-an-email"),
	}, &PhotoUpload{
		Filename: "new.png",
		Reader:   strings.NewReader("new portrait bytes"),
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")

	// Nothing of the rejected update sticks, the old photo included.
	var buf bytes.Buffer
	require.NoError(t, photos.Get(ctx, created.ID+".png", &buf))
	assert.Equal(t, "old portrait bytes", buf.String())
}

func TestUpdateMissingCard(t *testing.T) {
	s, _, _, _ := newTestService()
	_, err := s.Update(context.Background(), "no-such-id", validInput(), nil)
	assert.ErrorIs(t, err, apperrors.ErrCardNotFound)
}

func TestUpdateReplacesPhoto(t *testing.T) {
	s, _, _, photos := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, validInput(), &PhotoUpload{
		Filename: "old.png",
		Reader:   strings.NewReader("old"),
	})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, models.CardInput{}, &PhotoUpload{
		Filename: "new.jpg",
		Reader:   strings.NewReader("new"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID+".jpg", updated.PhotoPath)
	// The old blob is cleaned up once the row is consistent.
	assert.Equal(t, 1, photos.Len())
}

func TestDeleteCascades(t *testing.T) {
	s, _, scans, photos := newTestService()
	ctx := context.Background()

	created, err := s.Create(ctx, validInput(), &PhotoUpload{
		Filename: "p.png",
		Reader:   strings.NewReader("img"),
	})
	require.NoError(t, err)

	require.NoError(t, scans.Create(ctx, &models.Scan{CardID: created.ID, ScannedAt: time.Now().UTC()}))

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrCardNotFound)
	assert.Equal(t, 0, photos.Len())

	total, err := scans.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCardsGaugeTracksWrites(t *testing.T) {
	s, _, _, _ := newTestService()
	ctx := context.Background()

	first, err := s.Create(ctx, validInput(), nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, validInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, float64(2), promtestutil.ToFloat64(metrics.CardsTotal))

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(metrics.CardsTotal))
}

func TestDeleteMissingCard(t *testing.T) {
	s, _, _, _ := newTestService()
	err := s.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrCardNotFound)
}

func TestListOrder(t *testing.T) {
	cards := testutil.NewFakeCardRepo()
	scans := testutil.NewFakeScanRepo(cards)
	s := NewService(cards, scans, storage.NewMemoryStorage())
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"aaa", "bbb", "ccc"} {
		require.NoError(t, cards.Create(ctx, &models.Card{
			ID:        id,
			FirstName: "F",
			LastName:  "L",
			Email:     "f@l.com",
			Company:   "C",
			Position:  "P",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	listed, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "ccc", listed[0].ID)
	assert.Equal(t, "bbb", listed[1].ID)
	assert.Equal(t, "aaa", listed[2].ID)
}
