package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorCollectsAllErrors(t *testing.T) {
	v := New()
	v.Required("first_name", "  ")
	v.Required("company", "ACME")
	v.Email("email", "nope")
	v.AbsoluteURL("website", "relative/path")

	assert.False(t, v.Valid())
	assert.Len(t, v.Errors, 3)
	assert.Contains(t, v.Errors, "first_name")
	assert.Contains(t, v.Errors, "email")
	assert.Contains(t, v.Errors, "website")
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "ada.lovelace@example.com", "x+tag@sub.domain.org"}
	for _, e := range valid {
		v := New()
		v.Email("email", e)
		assert.True(t, v.Valid(), e)
	}

	invalid := []string{"", "plain", "a@b", "a b@c.com", "@x.com"}
	for _, e := range invalid {
		v := New()
		v.Email("email", e)
		assert.False(t, v.Valid(), e)
	}
}

func TestAbsoluteURL(t *testing.T) {
	v := New()
	v.AbsoluteURL("website", "https://example.com/about")
	assert.True(t, v.Valid())

	for _, u := range []string{"example.com", "/path/only", "://bad"} {
		v := New()
		v.AbsoluteURL("website", u)
		assert.False(t, v.Valid(), u)
	}
}

func TestFirstErrorPerFieldWins(t *testing.T) {
	v := New()
	v.Required("email", "")
	v.Email("email", "")

	assert.Equal(t, "must not be empty", v.Errors["email"])
}
