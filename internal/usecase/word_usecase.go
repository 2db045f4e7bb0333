package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/eslkit/vocadeck/internal/catalog"
	"github.com/eslkit/vocadeck/internal/entity"
	"github.com/eslkit/vocadeck/internal/repository"
)

// WordUsecase manages the user-authored word list and the blocklist.
type WordUsecase interface {
	AddUserWord(ctx context.Context, word entity.Word) (*entity.Word, error)
	DeleteUserWord(ctx context.Context, headword string) error
	ListUserWords(ctx context.Context) ([]entity.Word, error)
	BlockWord(ctx context.Context, headword string) error
	UnblockWord(ctx context.Context, headword string) error
	ListBlockedWords(ctx context.Context) ([]string, error)
	LevelCounts(ctx context.Context) (entity.LevelCounts, error)
}

type wordUsecase struct {
	catalog *catalog.Catalog
	store   repository.WordStore
	clock   func() time.Time
}

// NewWordUsecase wires the word logic with its store.
func NewWordUsecase(cat *catalog.Catalog, store repository.WordStore) WordUsecase {
	return &wordUsecase{catalog: cat, store: store, clock: time.Now}
}

// AddUserWord appends a word to the user list. Headword and translation
// are required; verb base, when present, must match the headword.
func (u *wordUsecase) AddUserWord(ctx context.Context, word entity.Word) (*entity.Word, error) {
	word.English = strings.TrimSpace(word.English)
	if word.English == "" || strings.TrimSpace(word.Translation) == "" {
		return nil, fmt.Errorf("%w: headword and translation required", entity.ErrValidation)
	}
	if word.Verb != nil {
		if word.Verb.Base == "" {
			word.Verb.Base = word.English
		}
		if !strings.EqualFold(word.Verb.Base, word.English) {
			return nil, fmt.Errorf("%w: verb base must equal headword", entity.ErrValidation)
		}
	}
	if word.Level != entity.LevelUnspecified {
		level := entity.ParseLevel(string(word.Level))
		if level == entity.LevelUnspecified {
			return nil, fmt.Errorf("%w: unknown level %q", entity.ErrValidation, word.Level)
		}
		word.Level = level
	}
	if word.SchoolLevel == entity.TierUnspecified {
		word.SchoolLevel = entity.TierOf(word.Level)
	}
	if word.FamilyID == "" {
		word.FamilyID = entity.NewUserFamilyID(u.clock())
	}

	words, err := u.store.LoadUserWords(ctx)
	if err != nil {
		return nil, err
	}
	// Replace an existing entry for the same headword instead of growing
	// duplicates.
	if _, idx, found := lo.FindIndexOf(words, func(w entity.Word) bool { return w.Key() == word.Key() }); found {
		words[idx] = word
	} else {
		words = append(words, word)
	}
	if err := u.store.SaveUserWords(ctx, words); err != nil {
		return nil, err
	}
	return &word, nil
}

func (u *wordUsecase) DeleteUserWord(ctx context.Context, headword string) error {
	key := entity.NormalizeWordToken(headword)
	if key == "" {
		return fmt.Errorf("%w: headword required", entity.ErrValidation)
	}
	words, err := u.store.LoadUserWords(ctx)
	if err != nil {
		return err
	}
	kept := lo.Filter(words, func(w entity.Word, _ int) bool { return w.Key() != key })
	if len(kept) == len(words) {
		return fmt.Errorf("%w: %s", entity.ErrWordNotFound, headword)
	}
	return u.store.SaveUserWords(ctx, kept)
}

func (u *wordUsecase) ListUserWords(ctx context.Context) ([]entity.Word, error) {
	return u.store.LoadUserWords(ctx)
}

// BlockWord adds a headword to the blocklist, excluding it from
// catalog-derived decks. Idempotent.
func (u *wordUsecase) BlockWord(ctx context.Context, headword string) error {
	key := entity.NormalizeWordToken(headword)
	if key == "" {
		return fmt.Errorf("%w: headword required", entity.ErrValidation)
	}
	blocked, err := u.store.LoadBlockedWords(ctx)
	if err != nil {
		return err
	}
	for _, w := range blocked {
		if entity.NormalizeWordToken(w) == key {
			return nil
		}
	}
	return u.store.SaveBlockedWords(ctx, append(blocked, key))
}

func (u *wordUsecase) UnblockWord(ctx context.Context, headword string) error {
	key := entity.NormalizeWordToken(headword)
	if key == "" {
		return fmt.Errorf("%w: headword required", entity.ErrValidation)
	}
	blocked, err := u.store.LoadBlockedWords(ctx)
	if err != nil {
		return err
	}
	kept := lo.Filter(blocked, func(w string, _ int) bool { return entity.NormalizeWordToken(w) != key })
	return u.store.SaveBlockedWords(ctx, kept)
}

func (u *wordUsecase) ListBlockedWords(ctx context.Context) ([]string, error) {
	return u.store.LoadBlockedWords(ctx)
}

// LevelCounts tallies bundled plus user words per level.
func (u *wordUsecase) LevelCounts(ctx context.Context) (entity.LevelCounts, error) {
	userWords, err := u.store.LoadUserWords(ctx)
	if err != nil {
		return entity.LevelCounts{}, err
	}
	return u.catalog.Counts(userWords), nil
}
