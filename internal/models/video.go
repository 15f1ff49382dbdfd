package models

import "time"

type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	FileKey      string    `json:"fileKey"`
	Duration     *int      `json:"duration"`
	IsActive     bool      `json:"isActive"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
