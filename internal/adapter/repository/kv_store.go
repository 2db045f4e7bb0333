// Package repository implements the persistence interfaces over a single
// key-value table. Each key holds one JSON-serialized collection, the same
// layout the data used in browser-local storage: whole-collection writes,
// no deltas, no cross-writer locking.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Storage keys. One JSON document per key.
const (
	keyUserWords     = "user_words"
	keyBlockedWords  = "blocked_words"
	keyCustomDecks   = "custom_decks"
	keySchemaVersion = "schema_version"
)

const schemaVersion = 1

// kvStore wraps the kv_store table with JSON (de)serialization. Reads of
// corrupt payloads are logged and treated as empty; a damaged local store
// must never brick the app.
type kvStore struct {
	db     *sql.DB
	rebind func(string) string
	logger *logrus.Logger
}

func newKVStore(db *sql.DB, driver string, logger *logrus.Logger) *kvStore {
	return &kvStore{db: db, rebind: rebindFor(driver), logger: logger}
}

// loadJSON reads the document under key into v. A missing key or an
// unparseable payload leaves v untouched and returns nil.
func (s *kvStore) loadJSON(ctx context.Context, key string, v any) error {
	var payload string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT value FROM kv_store WHERE key = ?`), key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		s.logger.WithError(err).Warnf("discarding corrupt payload under %q", key)
		return nil
	}
	return nil
}

// saveJSON overwrites the document under key with the serialization of v.
func (s *kvStore) saveJSON(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO kv_store (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		key, string(payload))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// rebindFor rewrites ? placeholders to $n for drivers that require
// ordinal parameters.
func rebindFor(driver string) func(string) string {
	switch driver {
	case "postgres", "pgx":
		return func(query string) string {
			var b strings.Builder
			n := 0
			for _, r := range query {
				if r == '?' {
					n++
					fmt.Fprintf(&b, "$%d", n)
					continue
				}
				b.WriteRune(r)
			}
			return b.String()
		}
	default:
		return func(query string) string { return query }
	}
}

func (s *kvStore) writeSchemaVersion(ctx context.Context) error {
	return s.saveJSON(ctx, keySchemaVersion, schemaVersion)
}
