package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"sacredgreeks/models"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Walking in Love":           "walking-in-love",
		"  Faith & Fraternity!! ":   "faith-fraternity",
		"Psalm 23: The Lord's Care": "psalm-23-the-lord-s-care",
		"---":                       "",
		"already-a-slug":            "already-a-slug",
		"Déjà Vu":                   "déjà-vu",
		strings.Repeat("ab ", 50):   strings.TrimRight(strings.Repeat("ab-", 27), "-"),
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyKeepsRunesWhole(t *testing.T) {
	got := Slugify("a" + strings.Repeat("é", 53))

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxSlugBytes)
	assert.Equal(t, "a"+strings.Repeat("é", 39), got)
}

func TestTimeline(t *testing.T) {
	lines, total := Timeline([]models.PrayerLine{
		{Text: "Lord, hear us", DurationSeconds: 4},
		{Text: "Silence"},
		{Text: "Amen", DurationSeconds: -2},
	})

	assert.Equal(t, 4+DefaultLineSeconds+DefaultLineSeconds, total)
	assert.Equal(t, []models.PrayAlongLine{
		{Text: "Lord, hear us", StartSeconds: 0, DurationSeconds: 4},
		{Text: "Silence", StartSeconds: 4, DurationSeconds: DefaultLineSeconds},
		{Text: "Amen", StartSeconds: 4 + DefaultLineSeconds, DurationSeconds: DefaultLineSeconds},
	}, lines)

	empty, zero := Timeline(nil)
	assert.Empty(t, empty)
	assert.Zero(t, zero)
}
