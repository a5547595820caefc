package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/h4nrul1/RepRight/internal/domain"
)

// --- Error Definitions ---
var (
	// ErrNoActiveUser is returned by mutating operations when no user is
	// bound to the store.
	ErrNoActiveUser = errors.New("no active user bound to exercise store")
)

// ExerciseAPI is the slice of the backend surface the store needs.
type ExerciseAPI interface {
	ListExercises(ctx context.Context, userID string) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, userID string, draft domain.ExerciseDraft) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID, userID string) error
}

// Patch carries the fields Update may change. Nil fields are left alone;
// a non-nil AnalysisResult replaces the previous result wholesale.
type Patch struct {
	Name           *string
	Category       *string
	VideoURI       *string
	ThumbnailURI   *string
	AnalysisResult *domain.FormAnalysis
}

// ExerciseStore is the in-memory cache of the bound user's exercises and
// the only path to the backend exercises API. The collection always belongs
// to at most one user and is kept newest-first.
type ExerciseStore struct {
	api ExerciseAPI

	mu        sync.RWMutex
	user      *domain.AuthUser
	exercises []domain.Exercise
	inflight  int
	// refreshSeq invalidates refresh responses superseded by a newer
	// refresh or a rebind, so an old response can never clobber newer
	// state or leak another user's records in.
	refreshSeq uint64
}

// NewExerciseStore creates an empty, unbound store.
func NewExerciseStore(api ExerciseAPI) *ExerciseStore {
	return &ExerciseStore{api: api}
}

// Bind sets the owning user. Any ownership change drops the cached
// collection immediately and invalidates in-flight refreshes; passing the
// already-bound user is a no-op.
func (s *ExerciseStore) Bind(user *domain.AuthUser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil && s.user == nil {
		return
	}
	if user != nil && s.user != nil && user.ID == s.user.ID {
		return
	}

	s.user = user
	s.exercises = nil
	s.refreshSeq++
}

// Clear drops the cached collection without touching the backend.
func (s *ExerciseStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.exercises = nil
	s.refreshSeq++
}

// Refresh fetches the bound user's full exercise list and replaces the
// collection wholesale. It is best effort: failures are logged and the
// prior collection is kept. A response is discarded if a newer refresh or
// a rebind started after this one.
func (s *ExerciseStore) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	userID := s.user.ID
	s.refreshSeq++
	seq := s.refreshSeq
	s.inflight++
	s.mu.Unlock()

	exercises, err := s.api.ListExercises(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		log.Printf("ERROR: Failed to refresh exercises for user %s: %v", userID, err)
		return
	}
	if seq != s.refreshSeq {
		// Superseded; the later response owns the collection.
		return
	}
	s.exercises = exercises
}

// Add sends a new exercise to the backend and, on success, prepends the
// server-returned record (the backend owns id and createdAt). Backend
// failures propagate to the caller; nothing is inserted optimistically.
func (s *ExerciseStore) Add(ctx context.Context, draft domain.ExerciseDraft) (*domain.Exercise, error) {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()
	if user == nil {
		return nil, ErrNoActiveUser
	}

	created, err := s.api.CreateExercise(ctx, user.ID, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Only insert if the store still belongs to the same user.
	if s.user != nil && s.user.ID == user.ID {
		s.exercises = append([]domain.Exercise{*created}, s.exercises...)
	}
	return created, nil
}

// Update applies a local-only shallow merge to the matching record. It
// never issues a network call; callers that need persistence do that first.
// Unknown ids are a no-op.
func (s *ExerciseStore) Update(id string, patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.exercises {
		if s.exercises[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.exercises[i].Name = *patch.Name
		}
		if patch.Category != nil {
			s.exercises[i].Category = *patch.Category
		}
		if patch.VideoURI != nil {
			s.exercises[i].VideoURI = *patch.VideoURI
		}
		if patch.ThumbnailURI != nil {
			s.exercises[i].ThumbnailURI = *patch.ThumbnailURI
		}
		if patch.AnalysisResult != nil {
			result := *patch.AnalysisResult
			s.exercises[i].AnalysisResult = &result
		}
		return
	}
}

// Delete issues the ownership-scoped remote delete and removes the record
// locally only after the backend confirmed. Failures propagate and leave
// the record in place.
func (s *ExerciseStore) Delete(ctx context.Context, id string) error {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()
	if user == nil {
		return ErrNoActiveUser
	}

	if err := s.api.DeleteExercise(ctx, id, user.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != user.ID {
		return nil
	}
	kept := s.exercises[:0]
	for _, e := range s.exercises {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.exercises = kept
	return nil
}

// GetByID returns the matching record and whether it exists. Pure lookup;
// no state change, no network.
func (s *ExerciseStore) GetByID(id string) (domain.Exercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Exercise{}, false
}

// Exercises returns a snapshot of the collection, newest first.
func (s *ExerciseStore) Exercises() []domain.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Exercise, len(s.exercises))
	copy(out, s.exercises)
	return out
}

// Loading reports whether any refresh is in flight.
func (s *ExerciseStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// User returns the currently bound user, or nil.
func (s *ExerciseStore) User() *domain.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
