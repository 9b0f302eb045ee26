package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/gravwell/config"
)

// csvStream appends rows of T to one file. The header goes out with the
// first batch.
type csvStream[T any] struct {
	name   string
	file   *os.File
	headed bool
}

func openStream[T any](dir, name string) (*csvStream[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream[T]{name: name, file: f}, nil
}

func (s *csvStream[T]) write(rows ...T) error {
	var err error
	if s.headed {
		err = gocsv.MarshalWithoutHeaders(rows, s.file)
	} else {
		err = gocsv.Marshal(rows, s.file)
		s.headed = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

func (s *csvStream[T]) close() error {
	if s == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager writes a run's files into one directory:
//
//	config.yaml      effective configuration
//	telemetry.csv    one row per stats window
//	perf.csv         tick timing per stats window
//	events.csv       every event, one row each
//	events.msgpack   the same events for replay tools
//	bookmarks.csv    flagged windows
//
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvStream[WindowStats]
	perf      *csvStream[PerfStatsCSV]
	events    *csvStream[EventRecord]
	bookmarks *csvStream[Bookmark]
	eventLog  *EventLog
}

// NewOutputManager creates dir and its files. An empty dir disables output
// and returns nil, nil.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = openStream[WindowStats](dir, "telemetry.csv"); err != nil {
		return nil, om.abort(err)
	}
	if om.perf, err = openStream[PerfStatsCSV](dir, "perf.csv"); err != nil {
		return nil, om.abort(err)
	}
	if om.events, err = openStream[EventRecord](dir, "events.csv"); err != nil {
		return nil, om.abort(err)
	}
	if om.bookmarks, err = openStream[Bookmark](dir, "bookmarks.csv"); err != nil {
		return nil, om.abort(err)
	}
	if om.eventLog, err = CreateEventLog(filepath.Join(dir, "events.msgpack")); err != nil {
		return nil, om.abort(fmt.Errorf("creating events.msgpack: %w", err))
	}
	return om, nil
}

// abort closes whatever was opened and returns err.
func (om *OutputManager) abort(err error) error {
	om.Close()
	return err
}

func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write(stats)
}

func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.write(stats.ToCSV(windowEnd))
}

// WriteEvents appends one tick's events to both event files.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	records := make([]EventRecord, len(events))
	for i, ev := range events {
		records[i] = ev.Record()
	}
	if err := om.events.write(records...); err != nil {
		return err
	}
	if err := om.eventLog.Append(records); err != nil {
		return fmt.Errorf("writing events.msgpack: %w", err)
	}
	return nil
}

func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write(b)
}

func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes the event log and closes every file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	if om.eventLog != nil {
		errs = append(errs, om.eventLog.Close())
	}
	errs = append(errs,
		om.telemetry.close(),
		om.perf.close(),
		om.events.close(),
		om.bookmarks.close(),
	)
	return errors.Join(errs...)
}
