package types

import "strings"

// Status discriminator values returned by mutating endpoints
const (
	StatusStarted   = "started"
	StatusRestarted = "restarted"
	StatusCreated   = "created"
	StatusDeleted   = "deleted"
	StatusPartial   = "partial"
	StatusRecreated = "recreated"
	StatusSuccess   = "success"
	StatusOK        = "ok"
)

// ActionResult is the body every mutating endpoint answers with. The client
// branches only on Status; Error carries the server's free-text failure.
type ActionResult struct {
	Status      string   `json:"status,omitempty"`
	Error       string   `json:"error,omitempty"`
	Message     string   `json:"message,omitempty"`
	Success     []string `json:"success,omitempty"`
	Errors      []string `json:"errors,omitempty"`
	ProfileName string   `json:"profile_name,omitempty"`
	ProfileNum  FlexInt  `json:"profile_num,omitempty"`
	HTTPStatus  int      `json:"-"`
}

// StatusIs compares the discriminator case-insensitively
func (r *ActionResult) StatusIs(values ...string) bool {
	if r == nil {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(r.Status), v) {
			return true
		}
	}
	return false
}

// ErrorText returns the most specific failure text the server sent
func (r *ActionResult) ErrorText() string {
	if r == nil {
		return ""
	}
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}

// CreateProfileRequest is the body of POST /api/create-new-profile
type CreateProfileRequest struct {
	Name string `json:"name"`
}

// BrowseRequest is the body of POST /api/browse-directories
type BrowseRequest struct {
	Path string `json:"path"`
}
