package api

// MessageResponse is a simple acknowledgement body for operations that
// have no resource to return, such as deletes.
type MessageResponse struct {
	Message string `json:"message" doc:"Human-readable status message"`
}

// MessageOutput wraps MessageResponse for huma.
type MessageOutput struct {
	Body MessageResponse
}
