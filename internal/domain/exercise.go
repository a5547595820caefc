package domain

import "time"

// Severity classifies how badly a flagged moment deviates from good form.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// KeyPoint is a single flagged moment in an analyzed video.
type KeyPoint struct {
	Timestamp float64  `json:"timestamp"` // seconds from the start of the video
	Issue     string   `json:"issue"`
	Severity  Severity `json:"severity"`
}

// FormAnalysis is the feedback produced by the analysis service for one video.
// A re-analysis replaces the whole struct; partial merges never happen.
type FormAnalysis struct {
	Score     int        `json:"score"` // 0-100
	Feedback  []string   `json:"feedback"`
	KeyPoints []KeyPoint `json:"keyPoints"`
}

// Exercise is a logged gym movement, optionally with an attached form video
// and its analysis. ID and CreatedAt are assigned by the backend and never
// change for the lifetime of the record.
type Exercise struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Category       string        `json:"category"` // e.g. "Legs", "Chest", "Back"
	VideoURI       string        `json:"videoUri,omitempty"`
	ThumbnailURI   string        `json:"thumbnailUri,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	AnalysisResult *FormAnalysis `json:"analysisResult,omitempty"`
}

// ExerciseDraft is the client-supplied part of a new exercise. The backend
// owns the rest (id, createdAt).
type ExerciseDraft struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	VideoURI     string `json:"videoUri,omitempty"`
	ThumbnailURI string `json:"thumbnailUri,omitempty"`
}

// HasVideo reports whether a form video has been attached.
func (e *Exercise) HasVideo() bool {
	return e.VideoURI != ""
}
