package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslkit/vocadeck/internal/catalog"
	"github.com/eslkit/vocadeck/internal/entity"
	"github.com/eslkit/vocadeck/internal/repository"
)

// DeckUsecase translates deck identifiers into concrete ordered word
// lists, merging the bundled catalog, user words, and stored custom decks.
type DeckUsecase interface {
	ResolveDeck(ctx context.Context, deckID string) ([]entity.Word, error)
	ResolveSystemDeck(ctx context.Context, tier entity.Tier, level entity.Level) ([]entity.Word, error)
	ResolveCustomDeck(ctx context.Context, deckID string) ([]entity.Word, error)
	CreateCustomDeck(ctx context.Context, name, rawText string) (*entity.Deck, []string, error)
	RenameDeck(ctx context.Context, deckID, name string) (*entity.Deck, error)
	DeleteDeck(ctx context.Context, deckID string) error
	ListCustomDecks(ctx context.Context) ([]entity.Deck, error)
	GetDeck(ctx context.Context, deckID string) (*entity.Deck, error)
}

const _maxDeckWords = 100

var tokenSplitter = regexp.MustCompile(`[\s,]+`)

type deckUsecase struct {
	catalog *catalog.Catalog
	words   repository.WordStore
	decks   repository.DeckStore
	clock   func() time.Time
}

// NewDeckUsecase wires the deck logic with its stores.
func NewDeckUsecase(cat *catalog.Catalog, words repository.WordStore, decks repository.DeckStore) DeckUsecase {
	return &deckUsecase{
		catalog: cat,
		words:   words,
		decks:   decks,
		clock:   time.Now,
	}
}

// ResolveDeck dispatches on the id namespace.
func (u *deckUsecase) ResolveDeck(ctx context.Context, deckID string) ([]entity.Word, error) {
	switch {
	case entity.IsSystemDeckID(deckID):
		tier, level, ok := entity.ParseSystemDeckID(deckID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown system deck %q", entity.ErrValidation, deckID)
		}
		return u.ResolveSystemDeck(ctx, tier, level)
	case entity.IsCustomDeckID(deckID):
		return u.ResolveCustomDeck(ctx, deckID)
	default:
		return nil, fmt.Errorf("%w: unknown deck namespace %q", entity.ErrValidation, deckID)
	}
}

// ResolveSystemDeck filters the catalog and user words by tier/level,
// excluding blocked headwords. Order follows catalog insertion order;
// callers that want randomization shuffle separately.
func (u *deckUsecase) ResolveSystemDeck(ctx context.Context, tier entity.Tier, level entity.Level) ([]entity.Word, error) {
	if tier == entity.TierUnspecified {
		return nil, fmt.Errorf("%w: tier required", entity.ErrValidation)
	}
	userWords, err := u.words.LoadUserWords(ctx)
	if err != nil {
		return nil, err
	}
	blocked, err := u.words.LoadBlockedWords(ctx)
	if err != nil {
		return nil, err
	}
	blockedSet := make(map[string]struct{}, len(blocked))
	for _, w := range blocked {
		blockedSet[entity.NormalizeWordToken(w)] = struct{}{}
	}

	union := append(append([]entity.Word{}, u.catalog.Words()...), userWords...)
	matched := lo.Filter(union, func(w entity.Word, _ int) bool {
		if _, isBlocked := blockedSet[w.Key()]; isBlocked {
			return false
		}
		if tier == entity.TierADV {
			return w.Level == entity.LevelADV
		}
		if w.SchoolLevel != tier {
			return false
		}
		return level == entity.LevelUnspecified || w.Level == level
	})
	return matched, nil
}

// CreateCustomDeck tokenizes the raw input, validates each headword
// against the catalog union, persists the deck, and reports the tokens
// that did not resolve. Partial matches are not an error.
func (u *deckUsecase) CreateCustomDeck(ctx context.Context, name, rawText string) (*entity.Deck, []string, error) {
	tokens := tokenizeInput(rawText)
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: enter at least one word", entity.ErrValidation)
	}
	if len(tokens) > _maxDeckWords {
		return nil, nil, fmt.Errorf("%w: at most %d words (got %d)", entity.ErrValidation, _maxDeckWords, len(tokens))
	}

	index, err := u.lookupIndex(ctx)
	if err != nil {
		return nil, nil, err
	}
	var valid, invalid []string
	for _, token := range tokens {
		if w, ok := index[token]; ok {
			valid = append(valid, w.Key())
		} else {
			invalid = append(invalid, token)
		}
	}
	if len(valid) == 0 {
		return nil, nil, fmt.Errorf("%w: no valid words in input", entity.ErrValidation)
	}

	now := u.clock()
	deck := entity.Deck{
		ID:        entity.NewCustomDeckID(now),
		Name:      strings.TrimSpace(name),
		WordList:  valid,
		CreatedAt: now,
		Meta: entity.DeckMeta{
			ValidCount:   len(valid),
			InvalidCount: len(invalid),
		},
	}
	if deck.Name == "" {
		deck.Name = "Deck " + now.Format("2006-01-02")
	}
	if err := u.decks.SaveDeck(ctx, deck); err != nil {
		return nil, nil, err
	}
	return &deck, invalid, nil
}

// ResolveCustomDeck re-resolves the stored headwords against the live
// catalog union so edits to user words propagate; headwords that no
// longer resolve are silently dropped.
func (u *deckUsecase) ResolveCustomDeck(ctx context.Context, deckID string) ([]entity.Word, error) {
	deck, err := u.decks.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
	}
	index, err := u.lookupIndex(ctx)
	if err != nil {
		return nil, err
	}
	resolved := make([]entity.Word, 0, len(deck.WordList))
	for _, headword := range deck.WordList {
		if w, ok := index[entity.NormalizeWordToken(headword)]; ok {
			resolved = append(resolved, w)
		}
	}
	return resolved, nil
}

// RenameDeck updates the display name of a stored custom deck.
func (u *deckUsecase) RenameDeck(ctx context.Context, deckID, name string) (*entity.Deck, error) {
	if !entity.IsCustomDeckID(deckID) {
		return nil, fmt.Errorf("%w: only custom decks can be renamed", entity.ErrPermission)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: deck name required", entity.ErrValidation)
	}
	deck, err := u.decks.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
	}
	deck.Name = name
	if err := u.decks.SaveDeck(ctx, *deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// DeleteDeck removes a custom deck. System decks are synthesized, not
// stored, and are not user-deletable.
func (u *deckUsecase) DeleteDeck(ctx context.Context, deckID string) error {
	if !entity.IsCustomDeckID(deckID) {
		return fmt.Errorf("%w: only custom decks can be deleted", entity.ErrPermission)
	}
	deck, err := u.decks.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if deck == nil {
		return fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
	}
	return u.decks.DeleteDeck(ctx, deckID)
}

func (u *deckUsecase) ListCustomDecks(ctx context.Context) ([]entity.Deck, error) {
	return u.decks.ListDecks(ctx)
}

// GetDeck returns the stored record for a custom deck. System decks are
// never persisted, so a valid system id yields a view synthesized from the
// current resolution instead.
func (u *deckUsecase) GetDeck(ctx context.Context, deckID string) (*entity.Deck, error) {
	if entity.IsSystemDeckID(deckID) {
		tier, level, ok := entity.ParseSystemDeckID(deckID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
		}
		words, err := u.ResolveSystemDeck(ctx, tier, level)
		if err != nil {
			return nil, err
		}
		name := string(tier)
		if level != entity.LevelUnspecified {
			name += " " + string(level)
		}
		return &entity.Deck{
			ID:       deckID,
			Name:     name,
			WordList: lo.Map(words, func(w entity.Word, _ int) string { return w.Key() }),
			Meta:     entity.DeckMeta{ValidCount: len(words)},
		}, nil
	}
	deck, err := u.decks.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
	}
	return deck, nil
}

// lookupIndex builds a case-insensitive headword index over the catalog
// plus the current user-word snapshot. Rebuilt per call: resolves always
// see live state.
func (u *deckUsecase) lookupIndex(ctx context.Context) (map[string]entity.Word, error) {
	userWords, err := u.words.LoadUserWords(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]entity.Word, u.catalog.Len()+len(userWords))
	for _, w := range u.catalog.Words() {
		if key := w.Key(); key != "" {
			index[key] = w
		}
	}
	for _, w := range userWords {
		if key := w.Key(); key != "" {
			index[key] = w
		}
	}
	return index, nil
}

// tokenizeInput splits free text on whitespace/commas, lowercases, and
// deduplicates preserving first-seen order.
func tokenizeInput(text string) []string {
	parts := tokenSplitter.Split(text, -1)
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := entity.NormalizeWordToken(part); token != "" {
			cleaned = append(cleaned, token)
		}
	}
	return lo.Uniq(cleaned)
}
