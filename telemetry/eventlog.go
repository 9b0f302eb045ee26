package telemetry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// EventLog appends event records to a msgpack stream, one encoded map per
// record.
type EventLog struct {
	file *os.File
	buf  *bufio.Writer
	enc  *msgpack.Encoder
}

// CreateEventLog creates (or truncates) an event log at path.
func CreateEventLog(path string) (*EventLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	buf := bufio.NewWriter(f)
	return &EventLog{file: f, buf: buf, enc: msgpack.NewEncoder(buf)}, nil
}

// Append encodes records in order.
func (l *EventLog) Append(records []EventRecord) error {
	for i := range records {
		if err := l.enc.Encode(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered records and closes the file.
func (l *EventLog) Close() error {
	flushErr := l.buf.Flush()
	if err := l.file.Close(); err != nil {
		return err
	}
	return flushErr
}

// ReadEventLog decodes every record from r. A record cut short by the end
// of the stream is an error.
func ReadEventLog(r io.Reader) ([]EventRecord, error) {
	br := bufio.NewReader(r)
	dec := msgpack.NewDecoder(br)
	var out []EventRecord
	for {
		if _, err := br.Peek(1); errors.Is(err, io.EOF) {
			return out, nil
		}
		var rec EventRecord
		if err := dec.Decode(&rec); err != nil {
			return out, fmt.Errorf("record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}

// LoadEventLog reads an event log file.
func LoadEventLog(path string) ([]EventRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadEventLog(f)
}
