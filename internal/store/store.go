package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lostfound-api/internal/models"
)

// ErrNotFound is returned when an item id is not present in the open pool.
var ErrNotFound = errors.New("item not found")

// ErrMissingField is returned by Create when a required field is empty.
var ErrMissingField = errors.New("missing required field")

// NewItem holds the caller-supplied fields of a submission. The id and
// submission timestamp are assigned by the store.
type NewItem struct {
	StudentNumber string
	Password      string
	Name          string
	Category      string
	Location      string
	Photo         string
}

// Validate checks that every required field is present.
func (n NewItem) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", n.Name},
		{"category", n.Category},
		{"location", n.Location},
		{"studentNumber", n.StudentNumber},
		{"password", n.Password},
	} {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// ItemUpdate carries the editable fields of an item. Empty fields are left
// untouched; the credential pair and id can never be changed through an
// update.
type ItemUpdate struct {
	Name     string
	Category string
	Location string
}

// ItemStore owns the open pool. Each mutating operation is a single atomic
// read-modify-write cycle; implementations serialize their own writers so a
// pair of racing mutations cannot silently discard each other.
type ItemStore interface {
	// Create assigns a fresh id, stamps the submission time, appends the
	// item to the open pool and persists it.
	Create(ctx context.Context, n NewItem) (models.Item, error)
	// List returns the open pool in insertion order.
	List(ctx context.Context) ([]models.Item, error)
	// FindByID returns the item with the given id or ErrNotFound.
	FindByID(ctx context.Context, id int64) (models.Item, error)
	// Update merges the supplied editable fields into an existing item.
	Update(ctx context.Context, id int64, upd ItemUpdate) error
	// Remove deletes the item from the open pool and returns it in one
	// step, so a claim can hand it to the ledger without a second read.
	Remove(ctx context.Context, id int64) (models.Item, error)
}

// ClaimLedger owns the claimed pool. Records are append-only: there is no
// update or removal once a claim has been written.
type ClaimLedger interface {
	Append(ctx context.Context, rec models.ClaimedItem) error
	List(ctx context.Context) ([]models.ClaimedItem, error)
}

// Now stamps submission and claim times. Truncated to milliseconds so a
// record survives a JSON round trip field-for-field.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func mergeUpdate(item *models.Item, upd ItemUpdate) {
	if upd.Name != "" {
		item.Name = upd.Name
	}
	if upd.Category != "" {
		item.Category = upd.Category
	}
	if upd.Location != "" {
		item.Location = upd.Location
	}
}
