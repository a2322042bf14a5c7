package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"reelplanner/models"
)

// MemoryStore keeps all records in process, guarded by a single RWMutex.
// Ids are monotonically assigned and never reused after deletion.
type MemoryStore struct {
	mu sync.RWMutex

	projects      map[int]models.Project
	users         map[int]models.User
	nextProjectID int
	nextUserID    int

	now func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:      make(map[int]models.Project),
		users:         make(map[int]models.User),
		nextProjectID: 1,
		nextUserID:    1,
		now:           time.Now,
	}
}

// CreateProject assigns the next id, applies defaults and stamps createdAt.
// CreatedAt is set exactly once here and never rewritten by updates.
func (s *MemoryStore) CreateProject(_ context.Context, p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProjectID
	s.nextProjectID++
	if p.VideoLength == 0 {
		p.VideoLength = models.DefaultVideoLength
	}
	p.CreatedAt = s.now()

	s.projects[p.ID] = p
	return p, nil
}

func (s *MemoryStore) GetProject(_ context.Context, id int) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return p, nil
}

// ListProjects returns projects newest first; equal timestamps fall back to
// insertion order (higher id first) so the ordering is stable.
func (s *MemoryStore) ListProjects(_ context.Context) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// UpdateProject merges the patch onto the existing record. Fields omitted
// from the patch are preserved unchanged.
func (s *MemoryStore) UpdateProject(_ context.Context, id int, patch models.ProjectPatch) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	patch.Apply(&p)
	s.projects[id] = p
	return p, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}
