// Package vcard renders a card as a vCard 3.0 contact file. The output is
// an interoperability surface consumed by contact-import tools: line order
// and encoding are fixed, and serializing an unchanged card twice yields
// byte-identical output.
package vcard

import (
	"fmt"
	"strings"

	"cardlink/internal/models"
)

// Serialize renders the card. photoURL, when non-empty, is embedded as a
// URL-valued PHOTO property.
func Serialize(card *models.Card, photoURL string) []byte {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		fmt.Sprintf("FN:%s %s", card.FirstName, card.LastName),
		fmt.Sprintf("N:%s;%s;;;", card.LastName, card.FirstName),
		fmt.Sprintf("EMAIL:%s", card.Email),
		fmt.Sprintf("ORG:%s", card.Company),
		fmt.Sprintf("TITLE:%s", card.Position),
	}

	if card.Phone != "" {
		lines = append(lines, fmt.Sprintf("TEL:%s", card.Phone))
	}
	if card.Website != "" {
		lines = append(lines, fmt.Sprintf("URL:%s", card.Website))
	}
	if photoURL != "" {
		lines = append(lines, fmt.Sprintf("PHOTO;VALUE=URL:%s", photoURL))
	}

	lines = append(lines, "END:VCARD")
	return []byte(strings.Join(lines, "\n"))
}

// Filename is the suggested download name for the contact file.
func Filename(card *models.Card) string {
	name := card.FirstName + "_" + card.LastName + ".vcf"
	return strings.ReplaceAll(name, " ", "_")
}
