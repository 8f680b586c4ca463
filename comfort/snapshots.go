package comfort

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// ErrNoSnapshot is returned when a kind has never been synced.
var ErrNoSnapshot = errors.New("no snapshot for kind")

// SnapshotStore persists the last successfully fetched copy of each
// collection, so serving tools can prefer real (if stale) data over
// the compiled-in samples across restarts and API outages.
type SnapshotStore interface {
	SaveCollection(ctx context.Context, kind Kind, payload []byte) error
	LoadCollection(ctx context.Context, kind Kind) ([]byte, error)
	SyncedAt(ctx context.Context, kind Kind) (time.Time, error)
	Close() error
}

type sqlSnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore opens a snapshot database. Turso URLs use the
// libsql driver, file: URLs use local sqlite.
func NewSnapshotStore(databaseURL string) (SnapshotStore, error) {
	var driver string

	switch {
	case strings.HasPrefix(databaseURL, "libsql://"):
		driver = "libsql"
	case strings.HasPrefix(databaseURL, "file:"):
		driver = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database URL: %s", databaseURL)
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("encountered an error connecting to the database: %s", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS collection_snapshots (
		kind TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		synced_at TIMESTAMP NOT NULL
	)`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("encountered an error preparing the snapshot table: %s", err)
	}

	return &sqlSnapshotStore{db}, nil
}

func (s *sqlSnapshotStore) SaveCollection(ctx context.Context, kind Kind, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("refusing to snapshot invalid JSON for %s", kind)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collection_snapshots (kind, payload, synced_at) VALUES (?, ?, ?)
		 ON CONFLICT(kind) DO UPDATE SET payload = excluded.payload, synced_at = excluded.synced_at`,
		string(kind), string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("encountered an error persisting a %s snapshot: %s", kind, err)
	}

	return nil
}

func (s *sqlSnapshotStore) LoadCollection(ctx context.Context, kind Kind) ([]byte, error) {
	var payload string

	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM collection_snapshots WHERE kind = ?`, string(kind)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("encountered an error fetching the %s snapshot: %s", kind, err)
	}

	return []byte(payload), nil
}

func (s *sqlSnapshotStore) SyncedAt(ctx context.Context, kind Kind) (time.Time, error) {
	var syncedAt time.Time

	err := s.db.QueryRowContext(ctx,
		`SELECT synced_at FROM collection_snapshots WHERE kind = ?`, string(kind)).Scan(&syncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("encountered an error fetching the %s snapshot: %s", kind, err)
	}

	return syncedAt, nil
}

func (s *sqlSnapshotStore) Close() error {
	return s.db.Close()
}

// SnapshotStoreContents writes every collection currently held by the
// store into the snapshot store as JSON.
func SnapshotStoreContents(ctx context.Context, store *Store, snapshots SnapshotStore) error {
	save := func(kind Kind, v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encountered an error encoding %s: %s", kind, err)
		}
		return snapshots.SaveCollection(ctx, kind, payload)
	}

	for _, step := range []struct {
		kind Kind
		v    any
	}{
		{KindProjects, store.Projects()},
		{KindArticles, store.Articles()},
		{KindPartners, store.Partners()},
		{KindUsers, store.Users()},
		{KindDonations, store.Donations()},
		{KindTeam, store.Team()},
		{KindTestimonials, store.Testimonials()},
		{KindSettings, store.Settings()},
	} {
		if err := save(step.kind, step.v); err != nil {
			return err
		}
	}

	return nil
}
