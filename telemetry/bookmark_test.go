package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, b := range bms {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkImpactSurge(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := int32(1); i <= 3; i++ {
		if bms := bd.Check(WindowStats{WindowEndTick: i * 10, Impacts: 1, Entities: 4}); len(bms) != 0 {
			t.Fatalf("unexpected bookmarks in quiet window: %v", bms)
		}
	}

	bms := bd.Check(WindowStats{WindowEndTick: 40, Impacts: 6, Entities: 4})
	if !hasBookmark(bms, BookmarkImpactSurge) {
		t.Errorf("expected impact surge, got %v", bms)
	}
}

func TestBookmarkMassDestruction(t *testing.T) {
	bd := NewBookmarkDetector(5)

	if bms := bd.Check(WindowStats{Destroyed: 1, Entities: 3}); hasBookmark(bms, BookmarkMassDestruction) {
		t.Error("single destruction flagged")
	}
	if bms := bd.Check(WindowStats{Destroyed: 2, Entities: 1}); !hasBookmark(bms, BookmarkMassDestruction) {
		t.Error("expected mass destruction bookmark")
	}
}

func TestBookmarkGridClearedOnce(t *testing.T) {
	bd := NewBookmarkDetector(5)

	// An empty grid from the start is not notable
	if bms := bd.Check(WindowStats{Entities: 0}); hasBookmark(bms, BookmarkGridCleared) {
		t.Error("empty start flagged as cleared")
	}

	bd.Check(WindowStats{Entities: 5})
	if bms := bd.Check(WindowStats{Entities: 0}); !hasBookmark(bms, BookmarkGridCleared) {
		t.Error("expected grid cleared bookmark")
	}
	if bms := bd.Check(WindowStats{Entities: 0}); hasBookmark(bms, BookmarkGridCleared) {
		t.Error("grid cleared flagged twice")
	}
}

func TestBookmarkFieldSurge(t *testing.T) {
	bd := NewBookmarkDetector(5)
	bd.Check(WindowStats{FieldMax: 0.5})

	if bms := bd.Check(WindowStats{FieldMax: 0.6}); hasBookmark(bms, BookmarkFieldSurge) {
		t.Error("small increase flagged")
	}
	if bms := bd.Check(WindowStats{FieldMax: 1.5}); !hasBookmark(bms, BookmarkFieldSurge) {
		t.Error("expected field surge bookmark")
	}
}
