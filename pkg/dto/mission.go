package dto

type CreateMissionRequest struct {
	Title         string  `json:"title"`
	ClientName    *string `json:"clientName,omitempty"`
	Description   *string `json:"description,omitempty"`
	CoverImageURL *string `json:"coverImageUrl,omitempty"`
	IsPublished   *bool   `json:"isPublished,omitempty"`
	DisplayOrder  *int    `json:"displayOrder,omitempty"`
}

type UpdateMissionRequest struct {
	Title         *string `json:"title,omitempty"`
	ClientName    *string `json:"clientName,omitempty"`
	Description   *string `json:"description,omitempty"`
	CoverImageURL *string `json:"coverImageUrl,omitempty"`
	IsPublished   *bool   `json:"isPublished,omitempty"`
	DisplayOrder  *int    `json:"displayOrder,omitempty"`
}

type CreateWorkflowRequest struct {
	MissionID    *int64  `json:"missionId,omitempty"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	ToolsUsed    *string `json:"toolsUsed,omitempty"`
	DemoURL      *string `json:"demoUrl,omitempty"`
	CodeSnippet  *string `json:"codeSnippet,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

// UpdateWorkflowRequest is partial. DetachMission clears missionId, which a
// JSON null cannot express here.
type UpdateWorkflowRequest struct {
	MissionID     *int64  `json:"missionId,omitempty"`
	DetachMission bool    `json:"detachMission,omitempty"`
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	ToolsUsed     *string `json:"toolsUsed,omitempty"`
	DemoURL       *string `json:"demoUrl,omitempty"`
	CodeSnippet   *string `json:"codeSnippet,omitempty"`
	DisplayOrder  *int    `json:"displayOrder,omitempty"`
}
