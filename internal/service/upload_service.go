package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/h4nrul1/RepRight/internal/domain"
	"github.com/h4nrul1/RepRight/internal/storage"
	"github.com/h4nrul1/RepRight/internal/store"
)

// --- Error Definitions ---
var (
	ErrValidationFailed = errors.New("exercise name and category are required")
)

// ExerciseCreator is the store surface the upload flow needs.
type ExerciseCreator interface {
	User() *domain.AuthUser
	Add(ctx context.Context, draft domain.ExerciseDraft) (*domain.Exercise, error)
}

// UploadService runs the record-a-form-video flow: push the bytes to the
// object store, then register the exercise with the video's URL attached.
type UploadService struct {
	objects   storage.ObjectStore
	exercises ExerciseCreator
	now       func() time.Time
}

// NewUploadService creates a new instance of UploadService.
func NewUploadService(objects storage.ObjectStore, exercises ExerciseCreator) *UploadService {
	return &UploadService{
		objects:   objects,
		exercises: exercises,
		now:       time.Now,
	}
}

// UploadVideo uploads a form video and creates the exercise record carrying
// its URL. The object key is scoped to the active user and timestamped so
// repeated uploads of the same exercise never collide.
func (s *UploadService) UploadVideo(ctx context.Context, name, category, contentType string, video io.Reader) (*domain.Exercise, error) {
	if name == "" || category == "" {
		return nil, ErrValidationFailed
	}
	user := s.exercises.User()
	if user == nil {
		return nil, store.ErrNoActiveUser
	}

	key := storage.VideoKey(user.ID, name, s.now())
	videoURL, err := s.objects.Upload(ctx, key, contentType, video)
	if err != nil {
		return nil, err
	}

	return s.exercises.Add(ctx, domain.ExerciseDraft{
		Name:     name,
		Category: category,
		VideoURI: videoURL,
	})
}

// AddWithoutVideo registers an exercise with no form video attached.
func (s *UploadService) AddWithoutVideo(ctx context.Context, name, category string) (*domain.Exercise, error) {
	if name == "" || category == "" {
		return nil, ErrValidationFailed
	}
	return s.exercises.Add(ctx, domain.ExerciseDraft{Name: name, Category: category})
}
