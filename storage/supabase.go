package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"reelplanner/models"
)

// SupabaseStore is the durable Store implementation, backed by the
// `projects` and `users` tables through PostgREST. Column names match the
// camelCase JSON tags on the models.
type SupabaseStore struct {
	client *supa.Client
}

// NewSupabaseStore connects to the given Supabase project.
func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("init supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

func (s *SupabaseStore) CreateProject(_ context.Context, p models.Project) (models.Project, error) {
	if p.VideoLength == 0 {
		p.VideoLength = models.DefaultVideoLength
	}
	p.CreatedAt = time.Now()

	// Marshal through JSON and drop the id so the database assigns it.
	row := map[string]interface{}{}
	raw, err := json.Marshal(p)
	if err != nil {
		return models.Project{}, err
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return models.Project{}, err
	}
	delete(row, "id")

	body, _, err := s.client.From("projects").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return firstProject(body)
}

func (s *SupabaseStore) GetProject(_ context.Context, id int) (models.Project, error) {
	body, _, err := s.client.From("projects").
		Select("*", "", false).
		Eq("id", strconv.Itoa(id)).
		Execute()
	if err != nil {
		return models.Project{}, fmt.Errorf("select project %d: %w", id, err)
	}
	return firstProject(body)
}

func (s *SupabaseStore) ListProjects(_ context.Context) ([]models.Project, error) {
	body, _, err := s.client.From("projects").
		Select("*", "", false).
		Order("createdAt", &postgrest.OrderOpts{Ascending: false}).
		Order("id", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	var projects []models.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

func (s *SupabaseStore) UpdateProject(_ context.Context, id int, patch models.ProjectPatch) (models.Project, error) {
	body, _, err := s.client.From("projects").
		Update(patch, "representation", "").
		Eq("id", strconv.Itoa(id)).
		Execute()
	if err != nil {
		return models.Project{}, fmt.Errorf("update project %d: %w", id, err)
	}
	return firstProject(body)
}

func (s *SupabaseStore) DeleteProject(_ context.Context, id int) (bool, error) {
	body, _, err := s.client.From("projects").
		Delete("representation", "").
		Eq("id", strconv.Itoa(id)).
		Execute()
	if err != nil {
		return false, fmt.Errorf("delete project %d: %w", id, err)
	}
	var deleted []models.Project
	if err := json.Unmarshal(body, &deleted); err != nil {
		return false, fmt.Errorf("decode delete response: %w", err)
	}
	return len(deleted) > 0, nil
}

func (s *SupabaseStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	row := map[string]interface{}{
		"username": u.Username,
		"password": u.Password,
	}
	body, _, err := s.client.From("users").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return firstUser(body)
}

func (s *SupabaseStore) GetUser(_ context.Context, id int) (models.User, error) {
	body, _, err := s.client.From("users").
		Select("*", "", false).
		Eq("id", strconv.Itoa(id)).
		Execute()
	if err != nil {
		return models.User{}, fmt.Errorf("select user %d: %w", id, err)
	}
	return firstUser(body)
}

func (s *SupabaseStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	body, _, err := s.client.From("users").
		Select("*", "", false).
		Eq("username", username).
		Execute()
	if err != nil {
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}
	return firstUser(body)
}

// PostgREST always answers with a JSON array, even for single-row results,
// so single-record helpers unmarshal a slice and take the head.
func firstProject(body []byte) (models.Project, error) {
	var rows []models.Project
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.Project{}, fmt.Errorf("decode project response: %w", err)
	}
	if len(rows) == 0 {
		return models.Project{}, ErrNotFound
	}
	return rows[0], nil
}

func firstUser(body []byte) (models.User, error) {
	var rows []models.User
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.User{}, fmt.Errorf("decode user response: %w", err)
	}
	if len(rows) == 0 {
		return models.User{}, ErrNotFound
	}
	return rows[0], nil
}
