package models

import "time"

const (
	ExperienceNotebook = "notebook"
	ExperienceVideo    = "video"
	ExperiencePodcast  = "podcast"
	ExperienceArticle  = "article"
)

type ExperiencePost struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Summary      *string   `json:"summary"`
	Content      *string   `json:"content"`
	Type         string    `json:"type"`
	MediaURL     *string   `json:"mediaUrl"`
	Tags         []string  `json:"tags"`
	IsPublished  bool      `json:"isPublished"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidExperienceType(t string) bool {
	switch t {
	case ExperienceNotebook, ExperienceVideo, ExperiencePodcast, ExperienceArticle:
		return true
	}
	return false
}
