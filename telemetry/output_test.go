package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
	"github.com/pthm-cable/gravwell/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager is a no-op
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil WriteTelemetry: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 10, Impacts: int(i)}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	events := []Event{
		NewExplosionEvent(10, 20, 2.5),
		NewDestroyedEvent(ecs.Entity{}, components.KindAsteroid, 10, 20),
	}
	if err := om.WriteEvents(events); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := om.WriteEvents(nil); err != nil {
		t.Fatalf("WriteEvents(nil): %v", err)
	}
	if err := om.WritePerf(PerfStats{AvgTickDuration: 800, P90TickDuration: 2000}, 30); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	for _, bm := range []Bookmark{
		{Type: BookmarkImpactSurge, Tick: 20, Description: "a"},
		{Type: BookmarkGridCleared, Tick: 30, Description: "b"},
	} {
		if err := om.WriteBookmark(bm); err != nil {
			t.Fatalf("WriteBookmark: %v", err)
		}
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var rows []WindowStats
	readCSV(t, filepath.Join(dir, "telemetry.csv"), &rows)
	if len(rows) != 3 {
		t.Fatalf("telemetry rows = %d, want 3", len(rows))
	}
	if rows[2].WindowEndTick != 30 || rows[2].Impacts != 3 {
		t.Errorf("last row = %+v", rows[2])
	}

	var perf []PerfStatsCSV
	readCSV(t, filepath.Join(dir, "perf.csv"), &perf)
	if len(perf) != 1 || perf[0].WindowEnd != 30 || perf[0].P90TickUS != 2 {
		t.Errorf("perf rows = %+v, want one row ending at 30 with p90 2us", perf)
	}

	var bms []Bookmark
	readCSV(t, filepath.Join(dir, "bookmarks.csv"), &bms)
	if len(bms) != 2 || bms[1].Type != BookmarkGridCleared {
		t.Errorf("bookmark rows = %+v", bms)
	}

	var recs []EventRecord
	readCSV(t, filepath.Join(dir, "events.csv"), &recs)
	if len(recs) != 2 {
		t.Fatalf("event rows = %d, want 2", len(recs))
	}
	if recs[0].Type != "explosion" || recs[0].Scale != 2.5 || recs[0].Kind != "" {
		t.Errorf("explosion row = %+v", recs[0])
	}
	if recs[1].Type != "destroyed" || recs[1].Kind != "asteroid" {
		t.Errorf("destroyed row = %+v", recs[1])
	}

	logged, err := LoadEventLog(filepath.Join(dir, "events.msgpack"))
	if err != nil {
		t.Fatalf("LoadEventLog: %v", err)
	}
	if len(logged) != len(recs) {
		t.Fatalf("event log records = %d, want %d", len(logged), len(recs))
	}
	for i := range recs {
		if logged[i] != recs[i] {
			t.Errorf("event log record %d = %+v, want %+v", i, logged[i], recs[i])
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
}
