package forum

import "sacredgreeks/models"

var categories = []models.ForumCategory{
	{ID: "general", Name: "General", Description: "Introductions and everything else."},
	{ID: "faith-and-greek-life", Name: "Faith & Greek Life", Description: "Living out your faith as a member of a Greek organization."},
	{ID: "prayer-support", Name: "Prayer Support", Description: "Encourage one another and share what God is doing."},
	{ID: "chapter-life", Name: "Chapter Life", Description: "Service, leadership and chapter culture."},
	{ID: "study-discussion", Name: "Study Discussion", Description: "Talk through study guides and devotionals."},
}

func Categories() []models.ForumCategory {
	out := make([]models.ForumCategory, len(categories))
	copy(out, categories)
	return out
}

func categoryExists(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
