package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/mafiagame-go/internal/model"
	"github.com/mcoot/mafiagame-go/internal/storage"
)

// Storage keeps the collection as a JSON array in a single file
type Storage struct {
	path string
}

// New creates a file backend. The file need not exist yet.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) ReadGames(ctx context.Context) ([]*model.Game, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.Game{}, nil
		}
		return nil, err
	}

	var games []*model.Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if games == nil {
		games = []*model.Game{}
	}
	return games, nil
}

// WriteGames replaces the file through a temporary sibling so readers
// never see a partial document
func (s *Storage) WriteGames(ctx context.Context, games []*model.Game) error {
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Storage) Destination() string {
	return s.path
}
