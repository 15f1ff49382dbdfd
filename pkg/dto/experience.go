package dto

type CreateExperienceRequest struct {
	Title        string   `json:"title"`
	Summary      *string  `json:"summary,omitempty"`
	Content      *string  `json:"content,omitempty"`
	Type         string   `json:"type"`
	MediaURL     *string  `json:"mediaUrl,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	IsPublished  *bool    `json:"isPublished,omitempty"`
	DisplayOrder *int     `json:"displayOrder,omitempty"`
}

type UpdateExperienceRequest struct {
	Title        *string   `json:"title,omitempty"`
	Summary      *string   `json:"summary,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Type         *string   `json:"type,omitempty"`
	MediaURL     *string   `json:"mediaUrl,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	IsPublished  *bool     `json:"isPublished,omitempty"`
	DisplayOrder *int      `json:"displayOrder,omitempty"`
}
