package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"calendar-cli/internal/log"
	"calendar-cli/internal/model"
)

// StorageKey is the single key the event mapping is persisted under.
const StorageKey = "calendarEvents"

const (
	jsonFileName   = StorageKey + ".json"
	sqliteFileName = "calendar.sqlite"
)

// Backend persists the serialized event mapping as one opaque blob.
// ReadBlob returns an error matching os.ErrNotExist when nothing was stored yet.
type Backend interface {
	ReadBlob(ctx context.Context) ([]byte, error)
	WriteBlob(ctx context.Context, b []byte) error
}

type BackendKind string

const (
	BackendSQLite BackendKind = "sqlite"
	BackendJSON   BackendKind = "json"
)

func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackendSQLite):
		return BackendSQLite, nil
	case string(BackendJSON):
		return BackendJSON, nil
	default:
		return "", fmt.Errorf("unknown storage backend: %s (want sqlite|json)", s)
	}
}

// OpenBackend returns the backend of the given kind rooted at dir.
// The SQLite backend picks up an existing JSON blob in dir on first read.
func OpenBackend(kind BackendKind, dir string) (Backend, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage dir is empty")
	}
	switch kind {
	case BackendJSON:
		return FileBackend{Path: filepath.Join(dir, jsonFileName)}, nil
	case BackendSQLite, "":
		return SQLiteBackend{
			Path:           filepath.Join(dir, sqliteFileName),
			LegacyJSONPath: filepath.Join(dir, jsonFileName),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", kind)
	}
}

// LoadStatus records what Load found in the backend.
type LoadStatus int

const (
	LoadAbsent LoadStatus = iota
	LoadOK
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadCorrupt:
		return "corrupt"
	default:
		return "absent"
	}
}

var ErrInvalidTime = errors.New("time must be a half-hour slot between 00:00 and 23:30")

// EventStore maps date-keys to at most one event each. Every mutation writes
// the full mapping back through the backend.
type EventStore struct {
	backend Backend
	events  map[string]model.Event
	status  LoadStatus
}

func New(b Backend) *EventStore {
	return &EventStore{backend: b, events: map[string]model.Event{}}
}

// Load replaces the in-memory mapping with the persisted one. Absent or
// malformed data yields an empty mapping; only backend I/O failures are errors.
func (s *EventStore) Load(ctx context.Context) error {
	s.events = map[string]model.Event{}
	s.status = LoadAbsent

	b, err := s.backend.ReadBlob(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}

	var raw map[string]model.Event
	if err := json.Unmarshal(b, &raw); err != nil {
		log.Debug("event store blob is malformed; starting empty", "err", err)
		s.status = LoadCorrupt
		return nil
	}

	for k, ev := range raw {
		key, err := model.NormalizeDateKey(k)
		if err != nil {
			log.Debug("dropping event with unreadable date key", "key", k)
			continue
		}
		ev.Date = key
		s.events[key] = ev
	}
	s.status = LoadOK
	log.Debug("event store loaded", "events", len(s.events))
	return nil
}

func (s *EventStore) Status() LoadStatus { return s.status }

func (s *EventStore) Len() int { return len(s.events) }

// Get returns the event stored at key (canonical or legacy form).
func (s *EventStore) Get(key string) (model.Event, bool) {
	k, err := model.NormalizeDateKey(key)
	if err != nil {
		return model.Event{}, false
	}
	ev, ok := s.events[k]
	return ev, ok
}

func (s *EventStore) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Put stores ev under key, replacing any existing event, and persists.
// An empty time defaults to 00:00.
func (s *EventStore) Put(ctx context.Context, key string, ev model.Event) error {
	k, err := model.NormalizeDateKey(key)
	if err != nil {
		return err
	}
	ev.Time = strings.TrimSpace(ev.Time)
	if ev.Time == "" {
		ev.Time = model.DefaultTime
	}
	if !model.IsTimeSlot(ev.Time) {
		return ErrInvalidTime
	}
	ev.Date = k
	s.events[k] = ev
	return s.persist(ctx)
}

// Remove deletes the event at key. Removing an absent key is not an error;
// the mapping is persisted either way.
func (s *EventStore) Remove(ctx context.Context, key string) error {
	k, err := model.NormalizeDateKey(key)
	if err != nil {
		return err
	}
	delete(s.events, k)
	return s.persist(ctx)
}

// All returns every event ordered by date.
func (s *EventStore) All() []model.Event {
	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Month returns the events of one month ordered by date.
func (s *EventStore) Month(y int, m time.Month) []model.Event {
	prefix := model.KeyFor(y, m, 1)[:len("2006-01-")]
	out := []model.Event{}
	for _, ev := range s.All() {
		if strings.HasPrefix(ev.Date, prefix) {
			out = append(out, ev)
		}
	}
	return out
}

// Snapshot returns a copy of the mapping for read-only consumers (the renderer).
func (s *EventStore) Snapshot() map[string]model.Event {
	out := make(map[string]model.Event, len(s.events))
	for k, v := range s.events {
		out[k] = v
	}
	return out
}

func (s *EventStore) persist(ctx context.Context) error {
	b, err := json.Marshal(s.events)
	if err != nil {
		return err
	}
	if err := s.backend.WriteBlob(ctx, b); err != nil {
		log.Error("event store write failed", err)
		return fmt.Errorf("persist events: %w", err)
	}
	return nil
}
