package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		GridWidth:  40,
		GridHeight: 25,
		TileSize:   32,
		Tick:       500,
		Entities: []EntityState{
			{Kind: "planet", TileX: 10, TileY: 12, Indexed: true, X: 336, Y: 400, Angle: 0.4, Health: 200},
			{Kind: "projectile", TileX: -1, TileY: 3, X: -4, Y: 100, VelX: -3, VelY: 1.5, Health: 1},
		},
		Bookmark: &Bookmark{Type: BookmarkMassDestruction, Tick: 500, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if got := filepath.Base(path); got != "scene_500_mass_destruction.yaml" {
		t.Errorf("file = %s, want scene_500_mass_destruction.yaml", got)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.GridWidth != 40 || loaded.GridHeight != 25 || loaded.TileSize != 32 {
		t.Errorf("grid = %dx%d@%v, want 40x25@32", loaded.GridWidth, loaded.GridHeight, loaded.TileSize)
	}
	if len(loaded.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(loaded.Entities))
	}
	for i := range loaded.Entities {
		if loaded.Entities[i] != snapshot.Entities[i] {
			t.Errorf("entity %d = %+v, want %+v", i, loaded.Entities[i], snapshot.Entities[i])
		}
	}
	if loaded.Bookmark == nil || *loaded.Bookmark != *snapshot.Bookmark {
		t.Errorf("bookmark = %+v, want %+v", loaded.Bookmark, snapshot.Bookmark)
	}
}

func TestSnapshotNameWithoutBookmark(t *testing.T) {
	if got := snapshotName(&Snapshot{Tick: 42}); got != "scene_42.yaml" {
		t.Errorf("snapshotName = %s, want scene_42.yaml", got)
	}
}

func TestLoadSnapshotRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"old version", "version: 1\ngrid_width: 4\ngrid_height: 4\n", "version 1"},
		{"empty grid", "version: 2\ngrid_width: 0\ngrid_height: 4\n", "no cells"},
		{"not yaml", "version: [\n", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadSnapshot(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadSnapshotEmptyGridIsSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("version: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); !errors.Is(err, errEmptyGrid) {
		t.Errorf("err = %v, want errEmptyGrid", err)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
