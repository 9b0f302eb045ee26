package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType names the condition that raised a bookmark.
type BookmarkType string

const (
	BookmarkImpactSurge     BookmarkType = "impact_surge"
	BookmarkMassDestruction BookmarkType = "mass_destruction"
	BookmarkGridCleared     BookmarkType = "grid_cleared"
	BookmarkFieldSurge      BookmarkType = "field_surge"
)

// Bookmark marks a stats window worth looking at later.
type Bookmark struct {
	Type        BookmarkType `csv:"type" yaml:"type"`
	Tick        int32        `csv:"tick" yaml:"tick"`
	Description string       `csv:"description" yaml:"description"`
}

func (b Bookmark) LogBookmark() {
	slog.Info("bookmark", "type", string(b.Type), "tick", b.Tick, "description", b.Description)
}

// bookmarkRule inspects the newest window against earlier ones, oldest
// first, and returns a description when it fires.
type bookmarkRule struct {
	typ   BookmarkType
	check func(bd *BookmarkDetector, cur WindowStats, prev []WindowStats) (string, bool)
}

var bookmarkRules = []bookmarkRule{
	{BookmarkImpactSurge, impactSurge},
	{BookmarkMassDestruction, massDestruction},
	{BookmarkGridCleared, gridCleared},
	{BookmarkFieldSurge, fieldSurge},
}

// BookmarkDetector raises bookmarks from consecutive stats windows.
type BookmarkDetector struct {
	prev  []WindowStats // oldest first, at most limit entries
	limit int

	peakEntities int // since the grid was last cleared
}

// NewBookmarkDetector keeps historySize windows for comparison, at least 3.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	limit := max(historySize, 3)
	return &BookmarkDetector{prev: make([]WindowStats, 0, limit), limit: limit}
}

// Check runs every rule on stats, then records it as history.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var out []Bookmark
	for _, r := range bookmarkRules {
		if desc, ok := r.check(bd, stats, bd.prev); ok {
			out = append(out, Bookmark{Type: r.typ, Tick: stats.WindowEndTick, Description: desc})
		}
	}

	if len(bd.prev) == bd.limit {
		bd.prev = append(bd.prev[:0], bd.prev[1:]...)
	}
	bd.prev = append(bd.prev, stats)
	bd.peakEntities = max(bd.peakEntities, stats.Entities)
	return out
}

// impactSurge: at least 3 impacts and over twice the recent mean, once
// three windows are known.
func impactSurge(_ *BookmarkDetector, cur WindowStats, prev []WindowStats) (string, bool) {
	if len(prev) < 3 || cur.Impacts < 3 {
		return "", false
	}
	sum := 0
	for _, w := range prev {
		sum += w.Impacts
	}
	mean := float64(sum) / float64(len(prev))
	if float64(cur.Impacts) <= 2*mean {
		return "", false
	}
	return fmt.Sprintf("%d impacts, %.1f average", cur.Impacts, mean), true
}

func massDestruction(_ *BookmarkDetector, cur WindowStats, _ []WindowStats) (string, bool) {
	if cur.Destroyed < 2 {
		return "", false
	}
	return fmt.Sprintf("%d bodies destroyed", cur.Destroyed), true
}

// gridCleared fires once per emptying of a grid that held entities.
func gridCleared(bd *BookmarkDetector, cur WindowStats, _ []WindowStats) (string, bool) {
	if bd.peakEntities == 0 || cur.Entities > 0 {
		return "", false
	}
	peak := bd.peakEntities
	bd.peakEntities = 0
	return fmt.Sprintf("Grid emptied from a peak of %d entities", peak), true
}

// fieldSurge: the strongest cell at least doubled since the last window.
func fieldSurge(_ *BookmarkDetector, cur WindowStats, prev []WindowStats) (string, bool) {
	if len(prev) == 0 {
		return "", false
	}
	last := prev[len(prev)-1].FieldMax
	if last <= 0 || cur.FieldMax < 2*last {
		return "", false
	}
	return fmt.Sprintf("Peak field %.2f up from %.2f", cur.FieldMax, last), true
}
