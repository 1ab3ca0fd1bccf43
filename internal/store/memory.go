package store

import (
	"context"
	"sync"

	"lostfound-api/internal/models"
)

// MemoryStore is the in-memory ItemStore. It honors the same ordering and
// serialization guarantees as the durable backends and is the backend of
// choice for tests.
type MemoryStore struct {
	mu    sync.Mutex
	ids   *Sequence
	items []models.Item
}

// NewMemoryStore returns an empty in-memory open pool.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: NewSequence(0)}
}

func (m *MemoryStore) Create(_ context.Context, n NewItem) (models.Item, error) {
	if err := n.Validate(); err != nil {
		return models.Item{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item := models.Item{
		ID:            m.ids.Next(),
		StudentNumber: n.StudentNumber,
		Password:      n.Password,
		Name:          n.Name,
		Category:      n.Category,
		Location:      n.Location,
		Photo:         n.Photo,
		DateSubmitted: Now(),
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id int64) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, ErrNotFound
}

func (m *MemoryStore) Update(_ context.Context, id int64, upd ItemUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			mergeUpdate(&m.items[i], upd)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) Remove(_ context.Context, id int64) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return it, nil
		}
	}
	return models.Item{}, ErrNotFound
}

// MemoryLedger is the in-memory ClaimLedger.
type MemoryLedger struct {
	mu      sync.Mutex
	records []models.ClaimedItem
}

// NewMemoryLedger returns an empty in-memory claimed pool.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) Append(_ context.Context, rec models.ClaimedItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}

func (l *MemoryLedger) List(_ context.Context) ([]models.ClaimedItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ClaimedItem, len(l.records))
	copy(out, l.records)
	return out, nil
}
