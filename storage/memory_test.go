package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelplanner/models"
)

func newTestProject(title string) models.Project {
	return models.Project{
		Title:    title,
		Platform: models.PlatformTikTok,
		Purpose:  "promote",
		Tone:     "energetic",
	}
}

func TestMemoryStore_CreateGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, newTestProject("Launch teaser"))
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, models.DefaultVideoLength, created.VideoLength)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.HookGenerated)
	assert.False(t, created.EditingComplete)

	got, err := s.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetProject(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	s.now = func() time.Time { return clock }

	for i, title := range []string{"first", "second", "third"} {
		clock = base.Add(time.Duration(i) * time.Minute)
		_, err := s.CreateProject(ctx, newTestProject(title))
		require.NoError(t, err)
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "third", projects[0].Title)
	assert.Equal(t, "second", projects[1].Title)
	assert.Equal(t, "first", projects[2].Title)
}

func TestMemoryStore_ListTieBreakByInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	for _, title := range []string{"older", "newer"} {
		_, err := s.CreateProject(ctx, newTestProject(title))
		require.NoError(t, err)
	}

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "newer", projects[0].Title)
	assert.Equal(t, "older", projects[1].Title)
}

func TestMemoryStore_UpdateMergesPatch(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, newTestProject("Patchable"))
	require.NoError(t, err)

	script := "Hook line. Body. CTA."
	updated, err := s.UpdateProject(ctx, created.ID, models.ProjectPatch{Script: &script})
	require.NoError(t, err)

	assert.Equal(t, script, *updated.Script)

	// Everything else is untouched by the patch.
	want := created
	want.Script = &script
	assert.Equal(t, want, updated)

	got, err := s.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestMemoryStore_UpdateURLAndFlagTogether(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, newTestProject("Generated"))
	require.NoError(t, err)

	url := "https://cdn.example.com/img-1.png"
	done := true
	updated, err := s.UpdateProject(ctx, created.ID, models.ProjectPatch{
		ImageURL:       &url,
		ImageGenerated: &done,
	})
	require.NoError(t, err)
	assert.Equal(t, url, *updated.ImageURL)
	assert.True(t, updated.ImageGenerated)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	s := NewMemoryStore()

	title := "nope"
	_, err := s.UpdateProject(context.Background(), 7, models.ProjectPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateProject(ctx, newTestProject("Doomed"))
	require.NoError(t, err)

	existed, err := s.DeleteProject(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = s.GetProject(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete reports absence instead of failing.
	existed, err = s.DeleteProject(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestMemoryStore_IDsNeverReused(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.CreateProject(ctx, newTestProject("one"))
	require.NoError(t, err)

	_, err = s.DeleteProject(ctx, first.ID)
	require.NoError(t, err)

	second, err := s.CreateProject(ctx, newTestProject("two"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestMemoryStore_Users(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, models.User{Username: "ava", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	byID, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := s.GetUserByUsername(ctx, "ava")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	_, err = s.GetUserByUsername(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
