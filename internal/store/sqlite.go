package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lostfound-api/internal/models"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS items (
    id             INTEGER PRIMARY KEY,
    student_number TEXT NOT NULL,
    password       TEXT NOT NULL,
    name           TEXT NOT NULL,
    category       TEXT NOT NULL,
    location       TEXT NOT NULL,
    photo          TEXT NOT NULL DEFAULT '',
    date_submitted TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS claimed_items (
    seq             INTEGER PRIMARY KEY AUTOINCREMENT,
    claim_id        INTEGER NOT NULL UNIQUE,
    item_id         INTEGER NOT NULL,
    student_number  TEXT NOT NULL,
    password        TEXT NOT NULL,
    name            TEXT NOT NULL,
    category        TEXT NOT NULL,
    location        TEXT NOT NULL,
    photo           TEXT NOT NULL DEFAULT '',
    date_submitted  TEXT NOT NULL,
    claimer_student TEXT NOT NULL,
    claimer_name    TEXT NOT NULL,
    claimer_photo   TEXT NOT NULL DEFAULT '',
    claim_date      TEXT NOT NULL
);
`

// OpenSQLite opens (or creates) the embedded database at path and applies
// the schema. Use ":memory:" for a throwaway database in tests.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// SQLiteStore is the open pool backed by an embedded SQLite database.
// Timestamps are stored as RFC 3339 text; ids come from an explicit
// sequence seeded from the table so uniqueness never rests on AUTOINCREMENT
// behavior alone.
type SQLiteStore struct {
	db  *sql.DB
	ids *Sequence
}

// NewSQLiteStore wires an ItemStore onto db, resuming the id sequence after
// the highest persisted id.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	var last sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(id) FROM items`).Scan(&last); err != nil {
		return nil, fmt.Errorf("seeding item ids: %w", err)
	}
	return &SQLiteStore{db: db, ids: NewSequence(last.Int64)}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, n NewItem) (models.Item, error) {
	if err := n.Validate(); err != nil {
		return models.Item{}, err
	}
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
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, student_number, password, name, category, location, photo, date_submitted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.StudentNumber, item.Password, item.Name, item.Category,
		item.Location, item.Photo, item.DateSubmitted.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.Item{}, fmt.Errorf("creating item: %w", err)
	}
	return item, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_number, password, name, category, location, photo, date_submitted
		 FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) FindByID(ctx context.Context, id int64) (models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, student_number, password, name, category, location, photo, date_submitted
		 FROM items WHERE id = ?`, id,
	)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("finding item: %w", err)
	}
	return it, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int64, upd ItemUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, student_number, password, name, category, location, photo, date_submitted
		 FROM items WHERE id = ?`, id,
	)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	mergeUpdate(&it, upd)
	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, location = ? WHERE id = ?`,
		it.Name, it.Category, it.Location, id,
	); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Remove(ctx context.Context, id int64) (models.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, fmt.Errorf("removing item: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, student_number, password, name, category, location, photo, date_submitted
		 FROM items WHERE id = ?`, id,
	)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("removing item: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return models.Item{}, fmt.Errorf("removing item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Item{}, fmt.Errorf("removing item: %w", err)
	}
	return it, nil
}

// SQLiteLedger is the claimed pool backed by the same embedded database.
type SQLiteLedger struct {
	db *sql.DB
}

// NewSQLiteLedger wires a ClaimLedger onto db.
func NewSQLiteLedger(db *sql.DB) *SQLiteLedger {
	return &SQLiteLedger{db: db}
}

func (l *SQLiteLedger) Append(ctx context.Context, rec models.ClaimedItem) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO claimed_items (claim_id, item_id, student_number, password, name, category,
		                            location, photo, date_submitted, claimer_student, claimer_name,
		                            claimer_photo, claim_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ClaimID, rec.ID, rec.StudentNumber, rec.Password, rec.Name, rec.Category,
		rec.Location, rec.Photo, rec.DateSubmitted.Format(time.RFC3339Nano),
		rec.ClaimerStudent, rec.ClaimerName, rec.ClaimerPhoto,
		rec.ClaimDate.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending claim: %w", err)
	}
	return nil
}

func (l *SQLiteLedger) List(ctx context.Context) ([]models.ClaimedItem, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT claim_id, item_id, student_number, password, name, category, location,
		        photo, date_submitted, claimer_student, claimer_name, claimer_photo, claim_date
		 FROM claimed_items ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	records := []models.ClaimedItem{}
	for rows.Next() {
		var rec models.ClaimedItem
		var submitted, claimed string
		if err := rows.Scan(
			&rec.ClaimID, &rec.ID, &rec.StudentNumber, &rec.Password, &rec.Name,
			&rec.Category, &rec.Location, &rec.Photo, &submitted,
			&rec.ClaimerStudent, &rec.ClaimerName, &rec.ClaimerPhoto, &claimed,
		); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		if rec.DateSubmitted, err = time.Parse(time.RFC3339Nano, submitted); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		if rec.ClaimDate, err = time.Parse(time.RFC3339Nano, claimed); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MaxClaimID returns the highest claim id in the ledger, for seeding the
// claim id sequence on startup.
func (l *SQLiteLedger) MaxClaimID(ctx context.Context) (int64, error) {
	var last sql.NullInt64
	if err := l.db.QueryRowContext(ctx, `SELECT MAX(claim_id) FROM claimed_items`).Scan(&last); err != nil {
		return 0, fmt.Errorf("seeding claim ids: %w", err)
	}
	return last.Int64, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var it models.Item
	var submitted string
	if err := row.Scan(
		&it.ID, &it.StudentNumber, &it.Password, &it.Name,
		&it.Category, &it.Location, &it.Photo, &submitted,
	); err != nil {
		return models.Item{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, submitted)
	if err != nil {
		return models.Item{}, err
	}
	it.DateSubmitted = ts
	return it, nil
}
