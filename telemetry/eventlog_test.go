package telemetry

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gravwell/components"
)

func TestEventLogAppendAcrossTicks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.msgpack")
	log, err := CreateEventLog(path)
	if err != nil {
		t.Fatalf("CreateEventLog: %v", err)
	}

	ticks := [][]Event{
		{NewPlacedEvent(ecs.Entity{}, components.KindPlanet, 16, 16)},
		{
			NewImpactEvent(ecs.Entity{}, components.KindPlanet, 16, 16, 4.5),
			NewDamagedEvent(ecs.Entity{}, components.KindPlanet, 7),
		},
	}
	for i, evs := range ticks {
		recs := make([]EventRecord, len(evs))
		for j, ev := range evs {
			ev.Tick = int32(i + 1)
			recs[j] = ev.Record()
		}
		if err := log.Append(recs); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := LoadEventLog(path)
	if err != nil {
		t.Fatalf("LoadEventLog: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("records = %d, want 3", len(got))
	}
	if got[0].Type != "placed" || got[0].Tick != 1 {
		t.Errorf("first record = %+v", got[0])
	}
	if got[1].Speed != 4.5 || got[2].Health != 7 || got[2].Tick != 2 {
		t.Errorf("tick 2 records = %+v, %+v", got[1], got[2])
	}
}

func TestReadEventLogEmpty(t *testing.T) {
	got, err := ReadEventLog(bytes.NewReader(nil))
	if err != nil || len(got) != 0 {
		t.Errorf("ReadEventLog(empty) = %v, %v; want empty, nil", got, err)
	}
}

func TestReadEventLogTruncated(t *testing.T) {
	if _, err := ReadEventLog(bytes.NewReader([]byte{0x85, 0xa1})); err == nil {
		t.Error("truncated log decoded without error")
	}
}
