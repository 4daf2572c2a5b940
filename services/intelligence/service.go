package intelligence

import (
	"context"
	"strings"
	"unicode/utf8"

	"sacredgreeks/models"
	"sacredgreeks/services/content"
	"sacredgreeks/utils"

	"go.uber.org/zap"
)

var pillarThemes = map[string]string{
	models.PillarPurpose:     "living out God's purpose through the organization",
	models.PillarRituals:     "examining rituals and traditions in the light of Scripture",
	models.PillarObligations: "keeping oaths and obligations with integrity",
	models.PillarOutcomes:    "the fruit and outcomes of membership",
	models.PillarFellowship:  "fellowship and unity with brothers and sisters",
}

func buildPrompt(intention, pillar, previous string) string {
	var b strings.Builder
	b.WriteString("Write a guided prayer for this intention: ")
	b.WriteString(intention)
	b.WriteString("\n")
	if theme, ok := pillarThemes[pillar]; ok {
		b.WriteString("Let it touch on ")
		b.WriteString(theme)
		b.WriteString(".\n")
	}
	if previous != "" {
		b.WriteString("Do not repeat this earlier intention word for word: ")
		b.WriteString(previous)
		b.WriteString("\n")
	}
	return b.String()
}

// splitLines drops blank lines and list or heading markers the model may still emit.
func splitLines(text string) []models.PrayerLine {
	var lines []models.PrayerLine
	for _, raw := range strings.Split(text, "\n") {
		l := strings.TrimSpace(raw)
		l = strings.TrimLeft(l, "#*-• ")
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, models.PrayerLine{Text: l})
	}
	return lines
}

func titleFor(pillar string) string {
	if pillar == "" {
		return "Guided Prayer"
	}
	return "Guided Prayer: " + strings.ToUpper(pillar[:1]) + pillar[1:]
}

func (s *DefaultIntelligenceService) GuidedPrayer(ctx context.Context, userID, intention, pillar string) (*models.GuidedPrayer, error) {
	logger := utils.GetLogger()
	intention = strings.TrimSpace(intention)
	pillar = strings.ToLower(strings.TrimSpace(pillar))
	if intention == "" || utf8.RuneCountInString(intention) > MaxIntentionLength {
		return nil, ErrInvalidInput
	}
	if _, ok := pillarThemes[pillar]; pillar != "" && !ok {
		return nil, ErrInvalidInput
	}
	if s.Generator == nil {
		return nil, ErrUnavailable
	}

	aiCtx := &models.AIContext{}
	if s.Store != nil {
		if stored, err := s.Store.Get(ctx, userID); err != nil {
			logger.Warn("ai: context load failed", zap.String("userID", userID), zap.Error(err))
		} else {
			aiCtx = stored
		}
	}

	text, err := s.Generator.GenerateContent(ctx, buildPrompt(intention, pillar, aiCtx.LastIntention))
	if err != nil {
		logger.Error("ai: generation failed", zap.String("userID", userID), zap.Error(err))
		return nil, ErrUnavailable
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyResponse
	}

	timeline, total := content.Timeline(lines)
	prayer := &models.GuidedPrayer{
		Title:        titleFor(pillar),
		Pillar:       pillar,
		Lines:        timeline,
		TotalSeconds: total,
	}

	if s.Store != nil {
		aiCtx.LastIntention = intention
		aiCtx.LastPrayer = text
		aiCtx.Requests++
		aiCtx.UpdatedAt = s.now()
		if err := s.Store.Set(ctx, userID, aiCtx); err != nil {
			logger.Warn("ai: context save failed", zap.String("userID", userID), zap.Error(err))
		}
	}
	return prayer, nil
}
