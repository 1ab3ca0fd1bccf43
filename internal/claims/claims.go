// Package claims moves items from the open pool into the claim ledger.
package claims

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"lostfound-api/internal/models"
	"lostfound-api/internal/store"
)

// ErrAlreadyClaimed is returned when the item is not in the open pool: the
// id never existed, or a concurrent claim won the race.
var ErrAlreadyClaimed = errors.New("item already claimed or missing")

// OrphanedClaimError reports the one irrecoverable inconsistency in the
// claim flow: the item was removed from the open pool but the ledger append
// failed afterward. There is no compensating transaction; the record must be
// reconciled by hand from the logged claim fields.
type OrphanedClaimError struct {
	ItemID  int64
	ClaimID int64
	Err     error
}

func (e *OrphanedClaimError) Error() string {
	return fmt.Sprintf("orphaned claim: item %d removed but claim %d not recorded: %v", e.ItemID, e.ClaimID, e.Err)
}

func (e *OrphanedClaimError) Unwrap() error { return e.Err }

// Manager performs the atomic transition of one item from the open pool to
// the claim ledger. Transitions are serialized by a single mutex, so two
// simultaneous claims of the same id cannot both pass the removal step; for
// a single-node pool this is also the ordering guarantee across the two
// collections.
type Manager struct {
	mu     sync.Mutex
	items  store.ItemStore
	ledger store.ClaimLedger
	ids    *store.Sequence
}

// NewManager wires a transition manager over the two pools. ids supplies
// claim identifiers and must be seeded past every id already in the ledger
// (see SeedClaimIDs).
func NewManager(items store.ItemStore, ledger store.ClaimLedger, ids *store.Sequence) *Manager {
	return &Manager{items: items, ledger: ledger, ids: ids}
}

// SeedClaimIDs builds a claim id sequence resuming after the highest id
// already recorded in the ledger.
func SeedClaimIDs(ctx context.Context, ledger store.ClaimLedger) (*store.Sequence, error) {
	records, err := ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("seeding claim ids: %w", err)
	}
	var last int64
	for _, rec := range records {
		if rec.ClaimID > last {
			last = rec.ClaimID
		}
	}
	return store.NewSequence(last), nil
}

// Transition removes the item, stamps it with claimer identity, evidence
// and a fresh claim id, and appends it to the ledger. Exactly one of two
// racing transitions for the same id succeeds; the loser gets
// ErrAlreadyClaimed.
func (m *Manager) Transition(ctx context.Context, itemID int64, claimerStudent, claimerName, claimerPhoto string) (models.ClaimedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := m.items.Remove(ctx, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return models.ClaimedItem{}, ErrAlreadyClaimed
	}
	if err != nil {
		return models.ClaimedItem{}, fmt.Errorf("claiming item %d: %w", itemID, err)
	}

	rec := models.ClaimedItem{
		Item:           item,
		ClaimID:        m.ids.Next(),
		ClaimerStudent: claimerStudent,
		ClaimerName:    claimerName,
		ClaimerPhoto:   claimerPhoto,
		ClaimDate:      store.Now(),
	}

	if err := m.ledger.Append(ctx, rec); err != nil {
		orphan := &OrphanedClaimError{ItemID: itemID, ClaimID: rec.ClaimID, Err: err}
		log.Printf("ORPHANED CLAIM: item %d (%q) removed from open pool, claim %d by %s (%s) not recorded: %v",
			itemID, item.Name, rec.ClaimID, claimerStudent, claimerName, err)
		return models.ClaimedItem{}, orphan
	}
	return rec, nil
}
