package shared

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContentShortPassthrough(t *testing.T) {
	assert.Equal(t, "hello", truncateContent("hello"))
}

func TestTruncateContentCapsAtLimit(t *testing.T) {
	long := strings.Repeat("a", 2500)

	got := truncateContent(long)
	assert.Equal(t, 2000, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestTruncateContentKeepsRunesIntact(t *testing.T) {
	// Multibyte runes must never be split at the cut point.
	long := strings.Repeat("음", 2500)

	got := truncateContent(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 2000, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}
