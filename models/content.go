package models

import "time"

const (
	KindDevotional = "devotional"
	KindPrayer     = "prayer"
	KindStudyGuide = "study_guide"
)

// P.R.O.O.F. pillars used to tag devotional content.
const (
	PillarPurpose     = "purpose"
	PillarRituals     = "rituals"
	PillarObligations = "obligations"
	PillarOutcomes    = "outcomes"
	PillarFellowship  = "fellowship"
)

var ContentKinds = []string{KindDevotional, KindPrayer, KindStudyGuide}

var ProofPillars = []string{PillarPurpose, PillarRituals, PillarObligations, PillarOutcomes, PillarFellowship}

type Content struct {
	ID          string         `bson:"id" json:"id"`
	Kind        string         `bson:"kind" json:"kind"`
	Title       string         `bson:"title" json:"title"`
	Slug        string         `bson:"slug" json:"slug"`
	Summary     string         `bson:"summary,omitempty" json:"summary,omitempty"`
	Body        string         `bson:"body,omitempty" json:"body,omitempty"`
	Scripture   string         `bson:"scripture,omitempty" json:"scripture,omitempty"`
	ProofPillar string         `bson:"proofPillar,omitempty" json:"proofPillar,omitempty"`
	PublishDate string         `bson:"publishDate,omitempty" json:"publishDate,omitempty"` // YYYY-MM-DD
	Lines       []PrayerLine   `bson:"lines,omitempty" json:"lines,omitempty"`
	Sections    []StudySection `bson:"sections,omitempty" json:"sections,omitempty"`
	Premium     bool           `bson:"premium" json:"premium"`
	Tags        []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	ImageURL    string         `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

type PrayerLine struct {
	Text            string `bson:"text" json:"text"`
	DurationSeconds int    `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
}

type StudySection struct {
	Heading   string   `bson:"heading" json:"heading"`
	Body      string   `bson:"body" json:"body"`
	Questions []string `bson:"questions,omitempty" json:"questions,omitempty"`
}

type ContentFilter struct {
	Kind   string
	Pillar string
	Tag    string
	Limit  int
	Offset int
}

type Bookmark struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	ContentID string    `bson:"contentId" json:"contentId"`
	Kind      string    `bson:"kind" json:"kind"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Completion marks that a user finished a piece of content on a given day.
type Completion struct {
	UserID    string    `bson:"userId" json:"userId"`
	ContentID string    `bson:"contentId" json:"contentId"`
	Kind      string    `bson:"kind" json:"kind"`
	Date      string    `bson:"date" json:"date"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type CompletionResult struct {
	Completed    bool          `json:"completed"`
	PointsEarned int           `json:"pointsEarned"`
	Achievements []Achievement `json:"achievements,omitempty"`
}

// PrayAlongLine is a prayer line with its position on the pray-along timeline.
type PrayAlongLine struct {
	Text            string `json:"text"`
	StartSeconds    int    `json:"startSeconds"`
	DurationSeconds int    `json:"durationSeconds"`
}

type PrayAlongScript struct {
	ContentID    string          `json:"contentId"`
	Title        string          `json:"title"`
	TotalSeconds int             `json:"totalSeconds"`
	Lines        []PrayAlongLine `json:"lines"`
}

type ContentInput struct {
	Kind        string         `json:"kind" binding:"required"`
	Title       string         `json:"title" binding:"required,max=200"`
	Slug        string         `json:"slug"`
	Summary     string         `json:"summary"`
	Body        string         `json:"body"`
	Scripture   string         `json:"scripture"`
	ProofPillar string         `json:"proofPillar"`
	PublishDate string         `json:"publishDate"`
	Lines       []PrayerLine   `json:"lines"`
	Sections    []StudySection `json:"sections"`
	Premium     bool           `json:"premium"`
	Tags        []string       `json:"tags"`
	ImageURL    string         `json:"imageUrl"`
}
