package requests

// GenerateNameRequest is the body of POST /v1/sessions/:session_id/name.
type GenerateNameRequest struct {
	Model string `json:"model"`
}

// RenameRequest is the body of PATCH /v1/sessions/:session_id/name.
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}
