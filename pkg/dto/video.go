package dto

type CreateVideoRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	VideoURL     string  `json:"videoUrl"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	FileKey      string  `json:"fileKey"`
	Duration     *int    `json:"duration,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

type UpdateVideoRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	VideoURL     *string `json:"videoUrl,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	FileKey      *string `json:"fileKey,omitempty"`
	Duration     *int    `json:"duration,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}
