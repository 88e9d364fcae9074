/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package logtest

import (
	"sync"
	"time"

	"github.com/ssgreg/logf"

	"github.com/acronis/go-localcache/log"
)

// RecordedEntry is a single logged entry.
type RecordedEntry struct {
	Time   time.Time
	Level  log.Level
	Text   string
	Fields []log.Field // fields added via With first, then the entry's own ones
}

// FindField returns the first field with the key.
func (e *RecordedEntry) FindField(key string) (*log.Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].Key == key {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// IntField returns the value of an integer field.
func (e *RecordedEntry) IntField(key string) (int64, bool) {
	f, ok := e.FindField(key)
	if !ok {
		return 0, false
	}
	return f.Int, true
}

// StringField returns the value of a string field.
func (e *RecordedEntry) StringField(key string) (string, bool) {
	f, ok := e.FindField(key)
	if !ok {
		return "", false
	}
	return string(f.Bytes), true
}

// entryStorage implements logf.EntryWriter. Entries are written synchronously.
type entryStorage struct {
	mu      sync.RWMutex
	entries []RecordedEntry
}

//nolint:gocritic // signature is defined by logf.EntryWriter
func (s *entryStorage) WriteEntry(e logf.Entry) {
	fields := make([]log.Field, 0, len(e.DerivedFields)+len(e.Fields))
	fields = append(fields, e.DerivedFields...)
	fields = append(fields, e.Fields...)

	s.mu.Lock()
	s.entries = append(s.entries, RecordedEntry{Time: e.Time, Level: fromLogfLevel(e.Level), Text: e.Text, Fields: fields})
	s.mu.Unlock()
}

func (s *entryStorage) filter(match func(*RecordedEntry) bool) []RecordedEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []RecordedEntry
	for i := range s.entries {
		if match == nil || match(&s.entries[i]) {
			res = append(res, s.entries[i])
		}
	}
	return res
}

// Recorder is a log.FieldLogger that records entries of all levels.
// Loggers derived from it via With or WithLevel record into the same storage.
type Recorder struct {
	*log.LogfAdapter
	storage *entryStorage
}

var _ log.FieldLogger = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	storage := &entryStorage{}
	return &Recorder{LogfAdapter: &log.LogfAdapter{Logger: logf.NewLogger(logf.LevelDebug, storage)}, storage: storage}
}

func (r *Recorder) With(fs ...log.Field) log.FieldLogger {
	return &Recorder{LogfAdapter: r.LogfAdapter.With(fs...).(*log.LogfAdapter), storage: r.storage}
}

func (r *Recorder) WithLevel(level log.Level) log.FieldLogger {
	return &Recorder{LogfAdapter: r.LogfAdapter.WithLevel(level).(*log.LogfAdapter), storage: r.storage}
}

// Entries returns a snapshot of all recorded entries in logging order.
func (r *Recorder) Entries() []RecordedEntry {
	return r.storage.filter(nil)
}

// FindEntry returns the first entry with the text.
func (r *Recorder) FindEntry(text string) (RecordedEntry, bool) {
	found := r.FindEntries(func(e *RecordedEntry) bool { return e.Text == text })
	if len(found) == 0 {
		return RecordedEntry{}, false
	}
	return found[0], true
}

// FindEntries returns all entries matching the predicate.
func (r *Recorder) FindEntries(match func(e *RecordedEntry) bool) []RecordedEntry {
	return r.storage.filter(match)
}

// EntriesAtLevel returns all entries logged at the level.
func (r *Recorder) EntriesAtLevel(level log.Level) []RecordedEntry {
	return r.FindEntries(func(e *RecordedEntry) bool { return e.Level == level })
}

// Reset drops all recorded entries.
func (r *Recorder) Reset() {
	r.storage.mu.Lock()
	r.storage.entries = nil
	r.storage.mu.Unlock()
}

func fromLogfLevel(level logf.Level) log.Level {
	switch level {
	case logf.LevelDebug:
		return log.LevelDebug
	case logf.LevelWarn:
		return log.LevelWarn
	case logf.LevelError:
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
