package models

// DefaultDemoScenario is selected when a member has never chosen one.
const DefaultDemoScenario = "new_member"

// DemoSettings is the per-user demo-mode state.
type DemoSettings struct {
	Enabled  bool   `bson:"enabled" json:"enabled"`
	Scenario string `bson:"scenario" json:"scenario"`
}

type DemoScenario struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Stats           Stats  `json:"stats"`
	EngagementScore int    `json:"engagementScore"`
	EngagementLabel string `json:"engagementLabel"`
	ShowOnboarding  bool   `json:"showOnboarding"`
	Premium         bool   `json:"premium"`
}
