package content

import "sacredgreeks/models"

// DefaultLineSeconds is used for prayer lines that carry no duration.
const DefaultLineSeconds = 5

// Timeline lays the lines out back to back and returns the total length in seconds.
func Timeline(lines []models.PrayerLine) ([]models.PrayAlongLine, int) {
	out := make([]models.PrayAlongLine, 0, len(lines))
	offset := 0
	for _, l := range lines {
		d := l.DurationSeconds
		if d <= 0 {
			d = DefaultLineSeconds
		}
		out = append(out, models.PrayAlongLine{Text: l.Text, StartSeconds: offset, DurationSeconds: d})
		offset += d
	}
	return out, offset
}
