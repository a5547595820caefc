package api

import (
	"time"

	"github.com/h4nrul1/RepRight/internal/domain"
)

// Wire records use the backend's snake_case field names. mapExercise is the
// single place they are translated to the in-memory camelCase model; no
// call site does its own field-by-field translation.

type exerciseRecord struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	VideoURL       *string         `json:"video_url"`
	ThumbnailURL   *string         `json:"thumbnail_url"`
	CreatedAt      string          `json:"created_at"`
	AnalysisResult *analysisRecord `json:"analysis_result"`
}

type analysisRecord struct {
	Score     int              `json:"score"`
	Feedback  []string         `json:"feedback"`
	KeyPoints []keyPointRecord `json:"key_points"`
}

type keyPointRecord struct {
	Timestamp float64 `json:"timestamp"`
	Issue     string  `json:"issue"`
	Severity  string  `json:"severity"`
}

type createExerciseRequest struct {
	CognitoUserID string  `json:"cognito_user_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	VideoURL      *string `json:"video_url"`
	ThumbnailURL  *string `json:"thumbnail_url"`
}

type saveAnalysisRequest struct {
	ExerciseID string           `json:"exercise_id"`
	Score      int              `json:"score"`
	Feedback   []string         `json:"feedback"`
	KeyPoints  []keyPointRecord `json:"key_points"`
}

// analyzeResponse tolerates both key casings: the analysis service emits
// "keyPoints" while stored results come back as "key_points".
type analyzeResponse struct {
	Score          int              `json:"score"`
	Feedback       []string         `json:"feedback"`
	KeyPoints      []keyPointRecord `json:"key_points"`
	KeyPointsCamel []keyPointRecord `json:"keyPoints"`
}

func (r analyzeResponse) toFormAnalysis() domain.FormAnalysis {
	points := r.KeyPoints
	if points == nil {
		points = r.KeyPointsCamel
	}
	return domain.FormAnalysis{
		Score:     r.Score,
		Feedback:  r.Feedback,
		KeyPoints: mapKeyPoints(points),
	}
}

// mapExercise converts one wire record to the in-memory model. It is total:
// every optional field maps to its zero value when absent.
func mapExercise(r exerciseRecord) domain.Exercise {
	exercise := domain.Exercise{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
	if r.VideoURL != nil {
		exercise.VideoURI = *r.VideoURL
	}
	if r.ThumbnailURL != nil {
		exercise.ThumbnailURI = *r.ThumbnailURL
	}
	if r.AnalysisResult != nil {
		exercise.AnalysisResult = &domain.FormAnalysis{
			Score:     r.AnalysisResult.Score,
			Feedback:  r.AnalysisResult.Feedback,
			KeyPoints: mapKeyPoints(r.AnalysisResult.KeyPoints),
		}
	}
	return exercise
}

func mapKeyPoints(records []keyPointRecord) []domain.KeyPoint {
	if records == nil {
		return []domain.KeyPoint{}
	}
	points := make([]domain.KeyPoint, len(records))
	for i, r := range records {
		points[i] = domain.KeyPoint{
			Timestamp: r.Timestamp,
			Issue:     r.Issue,
			Severity:  domain.Severity(r.Severity),
		}
	}
	return points
}

func mapKeyPointsToWire(points []domain.KeyPoint) []keyPointRecord {
	records := make([]keyPointRecord, len(points))
	for i, p := range points {
		records[i] = keyPointRecord{
			Timestamp: p.Timestamp,
			Issue:     p.Issue,
			Severity:  string(p.Severity),
		}
	}
	return records
}

// timestampLayouts covers RFC 3339 and the zone-less isoformat the backend's
// ORM emits for naive datetimes. Zone-less values are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
