package models

type DevotionalReminderPayload struct {
	Date string `json:"date"`
}

type AchievementEvalPayload struct {
	UserID string `json:"userId"`
}
