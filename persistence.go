package taskpad

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// DefaultStorageKey is the slot holding the serialized task array
const DefaultStorageKey = "todoTasks"

// Persistence loads and saves a snapshot of every task
type Persistence interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// SlotStore is a generic string-keyed get/set store
type SlotStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// SlotPersistence keeps the JSON task array in a single named slot
type SlotPersistence struct {
	slots  SlotStore
	key    string
	logger *slog.Logger
}

// NewSlotPersistence creates a Persistence over slots. An empty key uses
// DefaultStorageKey.
func NewSlotPersistence(slots SlotStore, key string, logger *slog.Logger) *SlotPersistence {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotPersistence{slots: slots, key: key, logger: logger}
}

// Load returns the stored tasks. An absent slot or content that is not a JSON
// array is an empty collection, not an error; only a failing slot store is
// reported. Elements that do not decode are dropped one by one so the rest of
// the array survives.
func (p *SlotPersistence) Load() ([]Task, error) {
	raw, ok, err := p.slots.Get(p.key)
	if err != nil {
		return []Task{}, &PersistenceError{Op: "load", Err: err}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Task{}, nil
	}

	if !gjson.Valid(raw) {
		p.logger.Warn("discarding corrupt task data", "key", p.key, "bytes", len(raw))
		return []Task{}, nil
	}
	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		p.logger.Warn("discarding task data that is not an array", "key", p.key, "type", doc.Type.String())
		return []Task{}, nil
	}

	tasks := []Task{}
	index := 0
	doc.ForEach(func(_, elem gjson.Result) bool {
		var t Task
		if err := json.Unmarshal([]byte(elem.Raw), &t); err != nil {
			p.logger.Warn("dropping unreadable task", "key", p.key, "index", index, "error", err)
		} else {
			tasks = append(tasks, t)
		}
		index++
		return true
	})
	return tasks, nil
}

// Save writes the snapshot to the slot
func (p *SlotPersistence) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return &PersistenceError{Op: "save", Err: fmt.Errorf("encode tasks: %w", err)}
	}
	if err := p.slots.Set(p.key, string(data)); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// MemorySlotStore keeps slots in process memory
type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: map[string]string{}}
}

func (m *MemorySlotStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemorySlotStore) Set(key, value string) error {
	m.mu.Lock()
	m.slots[key] = value
	m.mu.Unlock()
	return nil
}
