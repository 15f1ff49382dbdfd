package dto

type UploadResponse struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type UploadURLResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

type UploadErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
