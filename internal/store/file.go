package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lostfound-api/internal/models"
)

// FileStore is the durable ItemStore: the open pool held as a JSON array in
// a single file. Every mutation rewrites the whole array through a temp file
// and an atomic rename, so a reader never sees a half-written pool and a
// crash mid-write leaves the previous snapshot intact. A single mutex
// serializes the read-modify-write cycles.
type FileStore struct {
	mu    sync.Mutex
	path  string
	ids   *Sequence
	items []models.Item
}

// OpenFileStore loads the open pool from path, creating an empty pool file
// if none exists. The id sequence resumes after the highest persisted id.
func OpenFileStore(path string) (*FileStore, error) {
	var items []models.Item
	if err := loadJSON(path, &items); err != nil {
		return nil, fmt.Errorf("open item store: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	var last int64
	for _, it := range items {
		if it.ID > last {
			last = it.ID
		}
	}
	s := &FileStore{path: path, ids: NewSequence(last), items: items}
	if err := s.persist(); err != nil {
		return nil, fmt.Errorf("open item store: %w", err)
	}
	return s, nil
}

func (s *FileStore) Create(_ context.Context, n NewItem) (models.Item, error) {
	if err := n.Validate(); err != nil {
		return models.Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.Item{
		ID:            s.ids.Next(),
		StudentNumber: n.StudentNumber,
		Password:      n.Password,
		Name:          n.Name,
		Category:      n.Category,
		Location:      n.Location,
		Photo:         n.Photo,
		DateSubmitted: Now(),
	}
	s.items = append(s.items, item)
	if err := s.persist(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return models.Item{}, err
	}
	return item, nil
}

func (s *FileStore) List(_ context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *FileStore) FindByID(_ context.Context, id int64) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, ErrNotFound
}

func (s *FileStore) Update(_ context.Context, id int64, upd ItemUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			prev := s.items[i]
			mergeUpdate(&s.items[i], upd)
			if err := s.persist(); err != nil {
				s.items[i] = prev
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *FileStore) Remove(_ context.Context, id int64) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			rest := make([]models.Item, 0, len(s.items)-1)
			rest = append(rest, s.items[:i]...)
			rest = append(rest, s.items[i+1:]...)
			prev := s.items
			s.items = rest
			if err := s.persist(); err != nil {
				s.items = prev
				return models.Item{}, err
			}
			return it, nil
		}
	}
	return models.Item{}, ErrNotFound
}

func (s *FileStore) persist() error {
	return writeJSON(s.path, s.items)
}

// FileLedger is the durable ClaimLedger, a JSON array with the same
// atomic-replace discipline as FileStore.
type FileLedger struct {
	mu      sync.Mutex
	path    string
	records []models.ClaimedItem
}

// OpenFileLedger loads the claimed pool from path, creating an empty ledger
// file if none exists.
func OpenFileLedger(path string) (*FileLedger, error) {
	var records []models.ClaimedItem
	if err := loadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("open claim ledger: %w", err)
	}
	if records == nil {
		records = []models.ClaimedItem{}
	}
	l := &FileLedger{path: path, records: records}
	if err := writeJSON(path, l.records); err != nil {
		return nil, fmt.Errorf("open claim ledger: %w", err)
	}
	return l, nil
}

func (l *FileLedger) Append(_ context.Context, rec models.ClaimedItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	if err := writeJSON(l.path, l.records); err != nil {
		l.records = l.records[:len(l.records)-1]
		return err
	}
	return nil
}

func (l *FileLedger) List(_ context.Context) ([]models.ClaimedItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.ClaimedItem, len(l.records))
	copy(out, l.records)
	return out, nil
}

// loadJSON reads a JSON array file into v. A missing file is an empty pool.
func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// writeJSON replaces the collection file atomically: marshal, write to a
// temp file in the same directory, fsync, rename over the target. The
// two-space indent keeps the files byte-compatible with datasets written by
// earlier deployments.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
