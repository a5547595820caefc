package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/h4nrul1/RepRight/internal/domain"
)

// Error is a failure reported by the backend. Detail carries the
// FastAPI-style "detail" field when the body had one.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error (%d)", e.StatusCode)
}

// Client talks JSON over HTTP to the exercises/analysis backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. timeout bounds every request; zero
// means no client-side timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Health checks the backend's /api/health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	return c.do(ctx, http.MethodGet, "/api/health", nil, &resp)
}

// UpsertUser creates or refreshes the backend's record for an identity.
// The backend treats repeated calls for the same user as idempotent.
func (c *Client) UpsertUser(ctx context.Context, userID, email string) error {
	body := map[string]string{
		"cognito_user_id": userID,
		"email":           email,
	}
	return c.do(ctx, http.MethodPost, "/api/users", body, nil)
}

// ListExercises fetches every exercise belonging to the given user,
// newest first.
func (c *Client) ListExercises(ctx context.Context, userID string) ([]domain.Exercise, error) {
	var records []exerciseRecord
	path := "/api/exercises/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	exercises := make([]domain.Exercise, len(records))
	for i, r := range records {
		exercises[i] = mapExercise(r)
	}
	return exercises, nil
}

// CreateExercise sends a new exercise to the backend. The backend assigns
// id and createdAt; the returned record is verbatim what it stored.
func (c *Client) CreateExercise(ctx context.Context, userID string, draft domain.ExerciseDraft) (*domain.Exercise, error) {
	body := createExerciseRequest{
		CognitoUserID: userID,
		Name:          draft.Name,
		Category:      draft.Category,
		VideoURL:      optional(draft.VideoURI),
		ThumbnailURL:  optional(draft.ThumbnailURI),
	}
	var record exerciseRecord
	if err := c.do(ctx, http.MethodPost, "/api/exercises", body, &record); err != nil {
		return nil, err
	}
	exercise := mapExercise(record)
	return &exercise, nil
}

// DeleteExercise removes an exercise. The user ID rides along so the
// backend can verify ownership before deleting.
func (c *Client) DeleteExercise(ctx context.Context, exerciseID, userID string) error {
	path := fmt.Sprintf("/api/exercises/%s?cognito_user_id=%s",
		url.PathEscape(exerciseID), url.QueryEscape(userID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AnalyzeForm asks the analysis service to score a video.
func (c *Client) AnalyzeForm(ctx context.Context, videoURL, exerciseName string) (*domain.FormAnalysis, error) {
	body := map[string]string{
		"video_url":     videoURL,
		"exercise_name": exerciseName,
	}
	var record analyzeResponse
	if err := c.do(ctx, http.MethodPost, "/api/analyze", body, &record); err != nil {
		return nil, err
	}
	analysis := record.toFormAnalysis()
	return &analysis, nil
}

// SaveAnalysisResult persists an analysis against an exercise. The backend
// replaces any previous result for that exercise.
func (c *Client) SaveAnalysisResult(ctx context.Context, exerciseID string, analysis domain.FormAnalysis) error {
	body := saveAnalysisRequest{
		ExerciseID: exerciseID,
		Score:      analysis.Score,
		Feedback:   analysis.Feedback,
		KeyPoints:  mapKeyPointsToWire(analysis.KeyPoints),
	}
	path := fmt.Sprintf("/api/exercises/%s/analysis", url.PathEscape(exerciseID))
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// do performs one JSON round-trip. A nil out discards the response body;
// any status >= 400 becomes an *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
