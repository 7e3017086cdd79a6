package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/agusespa/chateval/pkg/logger"
)

//go:embed schema.sql
var schema string

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Collections mirrors the keys the web UI keeps in local storage
var Collections = []string{"chatbots", "campaigns", "datasets", "evaluations", "abtests"}

// Record is one JSON object of a collection. It always carries an "id".
type Record map[string]any

// ID returns the record id; numeric ids written by older clients are
// rendered in their shortest form.
func (r Record) ID() string {
	switch id := r["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// Store keeps collections of JSON records in a SQLite file
type Store struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

// Open opens (or creates) the store at path and applies the schema
func Open(path string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	log.Debug("store opened", "path", path)
	return &Store{db: db, logger: log, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func checkCollection(name string) error {
	if !slices.Contains(Collections, name) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return nil
}

// List returns every record of a collection in insertion order
func (s *Store) List(ctx context.Context, collection string) ([]Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM collections WHERE name = ? ORDER BY seq`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		var rec Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", collection, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}
	return records, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ? AND id = ?`, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return rec, nil
}

// Put inserts or replaces a record. A record without an id gets a new uuid;
// the stored record is returned.
func (s *Store) Put(ctx context.Context, collection string, rec Record) (Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	rec = withID(rec)

	if err := s.upsert(ctx, s.db, collection, rec); err != nil {
		return nil, err
	}
	s.logger.Debug("record stored", "collection", collection, "id", rec.ID())
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// ReplaceAll overwrites a whole collection in one transaction
func (s *Store) ReplaceAll(ctx context.Context, collection string, records []Record) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, collection); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	for _, rec := range records {
		if err := s.upsert(ctx, tx, collection, withID(rec)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", collection, err)
	}
	s.logger.Info("collection replaced", "collection", collection, "records", len(records))
	return nil
}

// Export returns every collection keyed by name; empty collections are
// present as empty lists.
func (s *Store) Export(ctx context.Context) (map[string][]Record, error) {
	out := make(map[string][]Record, len(Collections))
	for _, name := range Collections {
		records, err := s.List(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = records
	}
	return out, nil
}

// Import replaces each collection present in data. Unknown names are rejected
// before anything is written.
func (s *Store) Import(ctx context.Context, data map[string][]Record) error {
	for name := range data {
		if err := checkCollection(name); err != nil {
			return err
		}
	}
	for _, name := range Collections {
		records, ok := data[name]
		if !ok {
			continue
		}
		if err := s.ReplaceAll(ctx, name, records); err != nil {
			return err
		}
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) upsert(ctx context.Context, db execer, collection string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, rec.ID(), err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO collections (name, id, data, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name, id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, rec.ID(), string(data), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", collection, rec.ID(), err)
	}
	return nil
}

func withID(rec Record) Record {
	out := make(Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	if out.ID() == "" {
		out["id"] = uuid.NewString()
	}
	return out
}
