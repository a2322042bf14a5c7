package storage

import (
	"context"
	"errors"

	"reelplanner/models"
)

// ErrNotFound is returned when a record id has no backing row.
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary for projects plus the minimal user map.
// Handlers depend on this interface so the in-memory and Supabase-backed
// implementations are interchangeable.
type Store interface {
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	GetProject(ctx context.Context, id int) (models.Project, error)
	// ListProjects returns all projects ordered by createdAt descending.
	// When timestamps collide the newer insertion (higher id) comes first.
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, error)
	// DeleteProject reports whether a record existed.
	DeleteProject(ctx context.Context, id int) (bool, error)

	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}
