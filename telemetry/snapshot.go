package telemetry

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SnapshotVersion is bumped whenever the scene layout changes.
const SnapshotVersion = 2

// Snapshot is a diagnostic scene dump: grid shape plus every entity. The
// gravity field is left out since replaying the sources rebuilds it.
type Snapshot struct {
	Version    int           `yaml:"version"`
	Tick       int32         `yaml:"tick"`
	GridWidth  int           `yaml:"grid_width"`
	GridHeight int           `yaml:"grid_height"`
	TileSize   float64       `yaml:"tile_size"`
	Bookmark   *Bookmark     `yaml:"bookmark,omitempty"`
	Entities   []EntityState `yaml:"entities"`
}

// EntityState is one entity in a Snapshot. TileX and TileY are the indexed
// center and mean nothing when Indexed is false.
type EntityState struct {
	Kind    string  `yaml:"kind"`
	TileX   int     `yaml:"tile_x"`
	TileY   int     `yaml:"tile_y"`
	Indexed bool    `yaml:"indexed"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	VelX    float64 `yaml:"vel_x,omitempty"`
	VelY    float64 `yaml:"vel_y,omitempty"`
	Angle   float64 `yaml:"angle,omitempty"`
	Health  int     `yaml:"health"`
}

// snapshotName is scene_<tick>[_<bookmark>].yaml.
func snapshotName(s *Snapshot) string {
	parts := []string{"scene", fmt.Sprint(s.Tick)}
	if s.Bookmark != nil {
		parts = append(parts, strings.ReplaceAll(string(s.Bookmark.Type), " ", "_"))
	}
	return strings.Join(parts, "_") + ".yaml"
}

// SaveSnapshot writes s into dir and returns the file path.
func SaveSnapshot(s *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	path := filepath.Join(dir, snapshotName(s))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a scene dump, rejecting other versions and empty grids.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	switch {
	case s.Version != SnapshotVersion:
		return nil, fmt.Errorf("snapshot %s: version %d, want %d", path, s.Version, SnapshotVersion)
	case s.GridWidth <= 0 || s.GridHeight <= 0:
		return nil, fmt.Errorf("snapshot %s: %w", path, errEmptyGrid)
	}
	return &s, nil
}

var errEmptyGrid = errors.New("grid has no cells")
