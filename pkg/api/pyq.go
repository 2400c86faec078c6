package api

import "github.com/examia/examia-backend/internal/models"

// CreatePYQRequest represents a request to add a question record
type CreatePYQRequest struct {
	Exam     string `json:"exam"`
	Year     string `json:"year"`
	Subject  string `json:"subject"`
	Chapter  string `json:"chapter"`
	Question string `json:"question"`
	Solution string `json:"solution"`
	Type     string `json:"type"` // written | video
}

// PYQListResponse wraps a filtered listing
type PYQListResponse struct {
	Count int           `json:"count"`
	Items []*models.PYQ `json:"items"`
}

// ChaptersResponse lists the distinct chapter names for a filter
type ChaptersResponse struct {
	Chapters []string `json:"chapters"`
}

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	DeletedID string `json:"deleted_id"`
}

// HealthResponse represents the liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
