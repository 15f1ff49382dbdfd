package dto

type SessionRequest struct {
	AccessToken string `json:"accessToken"`
}

type SessionResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
