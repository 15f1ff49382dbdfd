package models

import (
	"strings"
	"time"
)

type Mission struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	ClientName    *string    `json:"clientName"`
	Description   *string    `json:"description"`
	CoverImageURL *string    `json:"coverImageUrl"`
	IsPublished   bool       `json:"isPublished"`
	DisplayOrder  int        `json:"displayOrder"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Workflows     []Workflow `json:"workflows,omitempty"`
}

type Workflow struct {
	ID           int64     `json:"id"`
	MissionID    *int64    `json:"missionId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	ToolsUsed    *string   `json:"toolsUsed"`
	DemoURL      *string   `json:"demoUrl"`
	CodeSnippet  *string   `json:"codeSnippet"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Tools splits the comma-separated tool list, dropping blanks.
func (w *Workflow) Tools() []string {
	if w.ToolsUsed == nil {
		return nil
	}
	var tools []string
	for _, t := range strings.Split(*w.ToolsUsed, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tools = append(tools, t)
		}
	}
	return tools
}
