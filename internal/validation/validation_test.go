package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("cosmic@example.com"))
	assert.NoError(t, ValidateEmail("deep.minds+demo@example.co.uk"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@"))
	assert.Error(t, ValidateEmail("Name <cosmic@example.com>"))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://soundcloud.com/cosmicwaves/journey"))
	assert.NoError(t, ValidateURL("http://example.com"))

	assert.Error(t, ValidateURL(""))
	assert.Error(t, ValidateURL("not-a-url"))
	assert.Error(t, ValidateURL("ftp://example.com/file"))
	assert.Error(t, ValidateURL("/relative/path"))
	assert.Error(t, ValidateURL("https://"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("dj_cosmic"))
	assert.NoError(t, ValidateUsername("luna-wave-99"))

	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has spaces"))
	assert.Error(t, ValidateUsername("emoji🎵name"))
}

func TestMinLen(t *testing.T) {
	assert.True(t, MinLen("Deep House Mix", 5))
	assert.False(t, MinLen("hey", 5))
	assert.False(t, MinLen("    x    ", 5))
}
