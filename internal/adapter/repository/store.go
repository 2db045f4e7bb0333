package repository

import (
	"context"
	"database/sql"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/entity"
	"github.com/eslkit/vocadeck/internal/repository"
)

// Store implements repository.WordStore and repository.DeckStore over the
// shared kv table.
type Store struct {
	kv *kvStore
}

var (
	_ repository.WordStore = (*Store)(nil)
	_ repository.DeckStore = (*Store)(nil)
)

// NewStore builds a Store bound to an open database handle. The driver
// name selects the placeholder dialect.
func NewStore(db *sql.DB, driver string, logger *logrus.Logger) *Store {
	return &Store{kv: newKVStore(db, driver, logger)}
}

func (s *Store) LoadUserWords(ctx context.Context) ([]entity.Word, error) {
	var words []entity.Word
	if err := s.kv.loadJSON(ctx, keyUserWords, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Store) SaveUserWords(ctx context.Context, words []entity.Word) error {
	if words == nil {
		words = []entity.Word{}
	}
	return s.kv.saveJSON(ctx, keyUserWords, words)
}

func (s *Store) LoadBlockedWords(ctx context.Context) ([]string, error) {
	var words []string
	if err := s.kv.loadJSON(ctx, keyBlockedWords, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Store) SaveBlockedWords(ctx context.Context, words []string) error {
	if words == nil {
		words = []string{}
	}
	return s.kv.saveJSON(ctx, keyBlockedWords, words)
}

// SaveDeck upserts a deck into the stored collection, keeping insertion
// order for new decks so repeated listings stay stable.
func (s *Store) SaveDeck(ctx context.Context, deck entity.Deck) error {
	decks, err := s.ListDecks(ctx)
	if err != nil {
		return err
	}
	if _, idx, found := lo.FindIndexOf(decks, func(d entity.Deck) bool { return d.ID == deck.ID }); found {
		decks[idx] = deck
	} else {
		decks = append(decks, deck)
	}
	return s.kv.saveJSON(ctx, keyCustomDecks, decks)
}

func (s *Store) GetDeck(ctx context.Context, id string) (*entity.Deck, error) {
	decks, err := s.ListDecks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range decks {
		if decks[i].ID == id {
			return &decks[i], nil
		}
	}
	return nil, nil
}

func (s *Store) ListDecks(ctx context.Context) ([]entity.Deck, error) {
	var decks []entity.Deck
	if err := s.kv.loadJSON(ctx, keyCustomDecks, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (s *Store) DeleteDeck(ctx context.Context, id string) error {
	decks, err := s.ListDecks(ctx)
	if err != nil {
		return err
	}
	kept := lo.Filter(decks, func(d entity.Deck, _ int) bool { return d.ID != id })
	return s.kv.saveJSON(ctx, keyCustomDecks, kept)
}

// Init creates the backing table and stamps the schema version.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.kv.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS kv_store (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		return err
	}
	return s.kv.writeSchemaVersion(ctx)
}
