package repository

import (
	"context"

	"github.com/eslkit/vocadeck/internal/entity"
)

// WordStore persists the user-authored word list and the blocklist. Each
// collection is written back whole on every mutation; reads fail soft on
// corrupt payloads so a damaged store never prevents startup.
type WordStore interface {
	LoadUserWords(ctx context.Context) ([]entity.Word, error)
	SaveUserWords(ctx context.Context, words []entity.Word) error
	LoadBlockedWords(ctx context.Context) ([]string, error)
	SaveBlockedWords(ctx context.Context, words []string) error
}

// DeckStore persists user-defined custom decks. System decks are derived
// on demand and never stored. GetDeck returns (nil, nil) when the id is
// unknown, matching the soft-miss convention of the word lookups.
type DeckStore interface {
	SaveDeck(ctx context.Context, deck entity.Deck) error
	GetDeck(ctx context.Context, id string) (*entity.Deck, error)
	ListDecks(ctx context.Context) ([]entity.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
}
