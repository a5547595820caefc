package service

import (
	"context"
	"errors"
	"log"

	"github.com/h4nrul1/RepRight/internal/domain"
	"github.com/h4nrul1/RepRight/internal/store"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrNoVideoAttached  = errors.New("exercise has no form video to analyze")
)

// AnalysisAPI is the backend slice the analysis flow needs.
type AnalysisAPI interface {
	AnalyzeForm(ctx context.Context, videoURL, exerciseName string) (*domain.FormAnalysis, error)
	SaveAnalysisResult(ctx context.Context, exerciseID string, analysis domain.FormAnalysis) error
}

// ExerciseUpdater is the store surface the analysis flow needs.
type ExerciseUpdater interface {
	GetByID(id string) (domain.Exercise, bool)
	Update(id string, patch store.Patch)
}

// AnalysisService runs a user-triggered form analysis end to end: call the
// analysis backend, persist the result, then attach it to the cached record.
type AnalysisService struct {
	api       AnalysisAPI
	exercises ExerciseUpdater
}

// NewAnalysisService creates a new instance of AnalysisService.
func NewAnalysisService(api AnalysisAPI, exercises ExerciseUpdater) *AnalysisService {
	return &AnalysisService{api: api, exercises: exercises}
}

// Analyze scores the exercise's video and attaches the result. The local
// update only runs once the result has been persisted; any earlier failure
// propagates and leaves the cached record untouched.
func (s *AnalysisService) Analyze(ctx context.Context, exerciseID string) (*domain.FormAnalysis, error) {
	exercise, ok := s.exercises.GetByID(exerciseID)
	if !ok {
		return nil, ErrExerciseNotFound
	}
	if !exercise.HasVideo() {
		return nil, ErrNoVideoAttached
	}

	analysis, err := s.api.AnalyzeForm(ctx, exercise.VideoURI, exercise.Name)
	if err != nil {
		return nil, err
	}

	if err := s.api.SaveAnalysisResult(ctx, exerciseID, *analysis); err != nil {
		return nil, err
	}

	s.exercises.Update(exerciseID, store.Patch{AnalysisResult: analysis})
	log.Printf("INFO: Analysis complete for exercise %s (score %d)", exerciseID, analysis.Score)
	return analysis, nil
}
