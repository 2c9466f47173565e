package vcard

import (
	"strings"
	"testing"
	"time"

	"cardlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCard() *models.Card {
	return &models.Card{
		ID:        "6f1c1c0a-9f2a-4c31-a9af-0d6a4f9f2e11",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Phone:     "+44 20 7946 0958",
		Company:   "Analytical Engines",
		Position:  "Engineer",
		Website:   "https://ada.example.com",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSerializeFullCard(t *testing.T) {
	out := string(Serialize(sampleCard(), "http://localhost:8080/api/photos/x.png"))

	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Ada Lovelace",
		"N:Lovelace;Ada;;;",
		"EMAIL:ada@x.com",
		"ORG:Analytical Engines",
		"TITLE:Engineer",
		"TEL:+44 20 7946 0958",
		"URL:https://ada.example.com",
		"PHOTO;VALUE=URL:http://localhost:8080/api/photos/x.png",
		"END:VCARD",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestSerializeOmitsOptionalFields(t *testing.T) {
	card := sampleCard()
	card.Phone = ""
	card.Website = ""

	out := string(Serialize(card, ""))
	assert.NotContains(t, out, "TEL:")
	assert.NotContains(t, out, "URL:")
	assert.NotContains(t, out, "PHOTO")
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCARD\nVERSION:3.0\n"))
	assert.True(t, strings.HasSuffix(out, "\nEND:VCARD"))
}

func TestSerializeIsDeterministic(t *testing.T) {
	card := sampleCard()
	first := Serialize(card, "http://x/p.png")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Serialize(card, "http://x/p.png"))
	}
}

func TestSerializePhoneOnlyDiff(t *testing.T) {
	a := sampleCard()
	b := sampleCard()
	b.Phone = "+1 555 0100"

	linesA := strings.Split(string(Serialize(a, "")), "\n")
	linesB := strings.Split(string(Serialize(b, "")), "\n")
	require.Equal(t, len(linesA), len(linesB))

	var diff []int
	for i := range linesA {
		if linesA[i] != linesB[i] {
			diff = append(diff, i)
		}
	}
	require.Len(t, diff, 1)
	assert.True(t, strings.HasPrefix(linesA[diff[0]], "TEL:"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Ada_Lovelace.vcf", Filename(sampleCard()))

	card := sampleCard()
	card.FirstName = "Mary Jane"
	assert.Equal(t, "Mary_Jane_Lovelace.vcf", Filename(card))
}
