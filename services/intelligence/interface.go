package intelligence

import (
	"context"
	"time"

	"sacredgreeks/models"
)

const MaxIntentionLength = 500

const systemInstruction = `You write short Christian prayers for members of Black Greek-letter organizations.
Write in the first person, warm and reverent, without headings, lists or markdown.
Put each sentence of the prayer on its own line. Keep it under twelve lines.`

// IntelligenceService generates guided prayers.
type IntelligenceService interface {
	GuidedPrayer(ctx context.Context, userID, intention, pillar string) (*models.GuidedPrayer, error)
}

type DefaultIntelligenceService struct {
	Generator TextGenerator
	Store     *RedisContextStore
	NowFn     func() time.Time
}

func (s *DefaultIntelligenceService) now() time.Time {
	if s.NowFn != nil {
		return s.NowFn()
	}
	return time.Now()
}
