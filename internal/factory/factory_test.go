package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/mafiagame-go/internal/storage"
)

func TestStorageType(t *testing.T) {
	cases := map[string]string{
		"":                         StorageTypeMemory,
		storage.MemoryDestination:  StorageTypeMemory,
		"redis://localhost:6379/0": StorageTypeRedis,
		"rediss://cache:6380":      StorageTypeRedis,
		"games.json":               StorageTypeFile,
		"/var/lib/mafia/data.json": StorageTypeFile,
	}
	for destination, want := range cases {
		assert.Equal(t, want, StorageType(destination), "destination %q", destination)
	}
}

func TestNewMemoryApp(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.Equal(t, storage.MemoryDestination, app.Store.Destination())
	assert.NotNil(t, app.GameController)
	assert.NotNil(t, app.VoteService)
	assert.NotNil(t, app.ActionService)
}

func TestNewFileAppPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	ctx := context.Background()

	app, err := New(Config{Destination: path})
	require.NoError(t, err)
	_, err = app.GameController.CreateGame(ctx, 12, "Test", true)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	reopened, err := New(Config{Destination: path})
	require.NoError(t, err)
	g, err := reopened.GameController.GetGame(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, 12, g.TopicID())
}

func TestNewRedisApp(t *testing.T) {
	mini := miniredis.RunT(t)
	ctx := context.Background()

	app, err := New(Config{Destination: "redis://" + mini.Addr()})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	_, err = app.GameController.CreateGame(ctx, 12, "Test", true)
	require.NoError(t, err)
	assert.True(t, mini.Exists("mafia:games"))
}

func TestNewRedisAppUnreachable(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	_, err := New(Config{Destination: "redis://" + addr})
	assert.Error(t, err)
}

func TestTestAppSetupGame(t *testing.T) {
	app := NewTestApp()
	ctx := context.Background()

	g, err := app.SetupGame(ctx, 3, "Setup", "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, g.LiveCount())
	assert.True(t, g.IsActive())
}
