package gestaltwerk

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// LogEntry is a single diagnostic record, emitted whenever layout or the
// cascade has something worth surfacing (a dropped property, a failed
// expression, a hot-reload event).
type LogEntry struct {
	Time    time.Time
	Level   string
	Source  string
	Message string
}

func (le *LogEntry) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", le.Time.Format(time.RFC3339), le.Level, le.Source, le.Message)
}

// LogColumn describes one column of a tabular log view, so a host UI can
// drive a table widget without gestaltwerk depending on one.
type LogColumn struct {
	Header string
	Width  int
}

// Log is a fixed-size ring buffer of diagnostic entries, the same shape
// as the teacher's own Log but stripped of its widget-table coupling and
// carried over unchanged into the new package.
type Log struct {
	entries []LogEntry
	columns []LogColumn
	size    int
	start   int
	count   int
	sink    *SQLiteSink
}

// NewLog creates a ring buffer holding up to size entries.
func NewLog(size int) *Log {
	return &Log{
		entries: make([]LogEntry, size),
		columns: []LogColumn{
			{Header: "Time", Width: 12},
			{Header: "Level", Width: 5},
			{Header: "Source", Width: 20},
			{Header: "Message", Width: 200},
		},
		size: size,
	}
}

// AttachSink mirrors every future Add call to a SQLiteSink in addition
// to the in-memory ring buffer. Passing nil detaches it.
func (l *Log) AttachSink(sink *SQLiteSink) { l.sink = sink }

func (l *Log) Add(source, level, message string, params ...any) {
	entry := LogEntry{
		Time:    time.Now(),
		Level:   level,
		Source:  source,
		Message: fmt.Sprintf(message, params...),
	}
	index := (l.start + l.count) % l.size
	l.entries[index] = entry

	if l.count < l.size {
		l.count++
	} else {
		l.start = (l.start + 1) % l.size
	}

	if l.sink != nil {
		l.sink.write(entry)
	}
}

func (l *Log) Columns() []LogColumn {
	return l.columns
}

func (l *Log) Length() int {
	return l.count
}

func (l *Log) Str(row, column int) string {
	entry := l.entries[(l.start+l.count-row-1)%l.size]
	switch column {
	case 0:
		return entry.Time.Format(time.TimeOnly)
	case 1:
		return entry.Level
	case 2:
		return entry.Source
	default:
		return entry.Message
	}
}

func (l *Log) Iter() <-chan LogEntry {
	ch := make(chan LogEntry)

	go func() {
		defer close(ch)
		for i := range l.count {
			ch <- l.entries[(l.start+i)%l.size]
		}
	}()

	return ch
}

// SQLiteSink persists diagnostic log entries to a SQLite database,
// grounded on SPEC_FULL.md §F.2's requirement for durable diagnostics
// across process restarts (the in-memory Log alone only covers the
// current run). Entries are written best-effort: a write failure is
// swallowed, since losing a diagnostic log line must never disrupt
// layout.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLiteSink opens (creating if needed) a SQLite database at path
// and ensures its entries table exists.
func OpenSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("gestaltwerk: opening sqlite sink: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS log_entries (
		time TEXT NOT NULL,
		level TEXT NOT NULL,
		source TEXT NOT NULL,
		message TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("gestaltwerk: creating sink schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteSink) write(entry LogEntry) {
	if s == nil || s.db == nil {
		return
	}
	_, _ = s.db.Exec(
		`INSERT INTO log_entries (time, level, source, message) VALUES (?, ?, ?, ?)`,
		entry.Time.Format(time.RFC3339Nano), entry.Level, entry.Source, entry.Message,
	)
}
