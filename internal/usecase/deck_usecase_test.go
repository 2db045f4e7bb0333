package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eslkit/vocadeck/internal/catalog"
	"github.com/eslkit/vocadeck/internal/entity"
)

type fakeStore struct {
	mu      sync.RWMutex
	words   []entity.Word
	blocked []string
	decks   []entity.Deck
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) LoadUserWords(ctx context.Context) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Word{}, s.words...), nil
}

func (s *fakeStore) SaveUserWords(ctx context.Context, words []entity.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = append([]entity.Word{}, words...)
	return nil
}

func (s *fakeStore) LoadBlockedWords(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.blocked...), nil
}

func (s *fakeStore) SaveBlockedWords(ctx context.Context, words []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = append([]string{}, words...)
	return nil
}

func (s *fakeStore) SaveDeck(ctx context.Context, deck entity.Deck) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.decks {
		if d.ID == deck.ID {
			s.decks[i] = deck
			return nil
		}
	}
	s.decks = append(s.decks, deck)
	return nil
}

func (s *fakeStore) GetDeck(ctx context.Context, deckID string) (*entity.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.decks {
		if d.ID == deckID {
			copy := d
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListDecks(ctx context.Context) ([]entity.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Deck{}, s.decks...), nil
}

func (s *fakeStore) DeleteDeck(ctx context.Context, deckID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.decks[:0]
	for _, d := range s.decks {
		if d.ID != deckID {
			kept = append(kept, d)
		}
	}
	s.decks = kept
	return nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]entity.Word{
		{English: "cat", POS: "n.", Translation: "貓", Level: entity.LevelJ1, SchoolLevel: entity.TierJH},
		{English: "dog", POS: "n.", Translation: "狗", Level: entity.LevelJ1, SchoolLevel: entity.TierJH},
		{English: "fish", POS: "n.", Translation: "魚", Level: entity.LevelJ2, SchoolLevel: entity.TierJH},
		{English: "ability", POS: "n.", Translation: "能力", Level: entity.LevelH1, SchoolLevel: entity.TierSH},
		{English: "facilitate", POS: "v.", Translation: "促進", Level: entity.LevelADV, SchoolLevel: entity.TierADV},
	})
}

func newTestDeckUsecase(store *fakeStore) (*deckUsecase, time.Time) {
	uc := NewDeckUsecase(testCatalog(), store, store)
	impl := uc.(*deckUsecase)
	fixed := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	impl.clock = func() time.Time { return fixed }
	return impl, fixed
}

func TestCreateCustomDeckDeduplicatesAndReportsInvalid(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	deck, rejected, err := uc.CreateCustomDeck(context.Background(), "", "cat dog cat FISH zebra")
	if err != nil {
		t.Fatalf("CreateCustomDeck returned error: %v", err)
	}
	want := []string{"cat", "dog", "fish"}
	if len(deck.WordList) != len(want) {
		t.Fatalf("expected %d words, got %v", len(want), deck.WordList)
	}
	for i, w := range want {
		if deck.WordList[i] != w {
			t.Errorf("word %d: expected %q, got %q", i, w, deck.WordList[i])
		}
	}
	if len(rejected) != 1 || rejected[0] != "zebra" {
		t.Errorf("expected rejected [zebra], got %v", rejected)
	}
	if deck.Meta.ValidCount != 3 || deck.Meta.InvalidCount != 1 {
		t.Errorf("unexpected meta: %+v", deck.Meta)
	}
	if !strings.HasPrefix(deck.ID, entity.CustomDeckPrefix) {
		t.Errorf("expected custom deck id, got %q", deck.ID)
	}
	if deck.Name != "Deck 2024-05-01" {
		t.Errorf("expected dated default name, got %q", deck.Name)
	}
}

func TestCreateCustomDeckRejectsEmptyInput(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	_, _, err := uc.CreateCustomDeck(context.Background(), "x", " , ,\n ")
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateCustomDeckRejectsAllUnknownWords(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	_, _, err := uc.CreateCustomDeck(context.Background(), "x", "zebra unicorn")
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.decks) != 0 {
		t.Errorf("expected no deck persisted, got %d", len(store.decks))
	}
}

func TestCreateCustomDeckRejectsOversizedInput(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	tokens := make([]string, 101)
	for i := range tokens {
		tokens[i] = "word" + strings.Repeat("a", i)
	}
	_, _, err := uc.CreateCustomDeck(context.Background(), "x", strings.Join(tokens, " "))
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolveCustomDeckDropsUnresolvable(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	deck, _, err := uc.CreateCustomDeck(context.Background(), "pets", "cat dog")
	if err != nil {
		t.Fatalf("CreateCustomDeck returned error: %v", err)
	}
	store.decks[0].WordList = append(store.decks[0].WordList, "vanished")

	words, err := uc.ResolveCustomDeck(context.Background(), deck.ID)
	if err != nil {
		t.Fatalf("ResolveCustomDeck returned error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 resolved words, got %d", len(words))
	}
	if words[0].English != "cat" || words[1].English != "dog" {
		t.Errorf("unexpected resolution order: %v, %v", words[0].English, words[1].English)
	}
}

func TestResolveCustomDeckUnknownID(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	_, err := uc.ResolveCustomDeck(context.Background(), "custom:123456")
	if !errors.Is(err, entity.ErrDeckNotFound) {
		t.Fatalf("expected deck not found, got %v", err)
	}
}

func TestResolveSystemDeckFiltersTierLevelAndBlocklist(t *testing.T) {
	store := newFakeStore()
	store.blocked = []string{"dog"}
	uc, _ := newTestDeckUsecase(store)

	words, err := uc.ResolveSystemDeck(context.Background(), entity.TierJH, entity.LevelJ1)
	if err != nil {
		t.Fatalf("ResolveSystemDeck returned error: %v", err)
	}
	if len(words) != 1 || words[0].English != "cat" {
		t.Fatalf("expected only cat, got %v", words)
	}
}

func TestResolveSystemDeckTierOnlyIncludesAllLevels(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	words, err := uc.ResolveSystemDeck(context.Background(), entity.TierJH, entity.LevelUnspecified)
	if err != nil {
		t.Fatalf("ResolveSystemDeck returned error: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 junior words, got %d", len(words))
	}
}

func TestResolveSystemDeckIncludesUserWords(t *testing.T) {
	store := newFakeStore()
	store.words = []entity.Word{
		{English: "serendipity", Translation: "機緣", Level: entity.LevelJ1, SchoolLevel: entity.TierJH},
	}
	uc, _ := newTestDeckUsecase(store)

	words, err := uc.ResolveSystemDeck(context.Background(), entity.TierJH, entity.LevelJ1)
	if err != nil {
		t.Fatalf("ResolveSystemDeck returned error: %v", err)
	}
	found := false
	for _, w := range words {
		if w.English == "serendipity" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected user word in system deck, got %v", words)
	}
}

func TestGetDeckSynthesizesSystemView(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	deck, err := uc.GetDeck(context.Background(), "system:jh_j1")
	if err != nil {
		t.Fatalf("GetDeck returned error: %v", err)
	}
	if deck.ID != "system:jh_j1" || deck.Name != "JH J1" {
		t.Errorf("unexpected deck view: id=%q name=%q", deck.ID, deck.Name)
	}
	if len(deck.WordList) != 2 || deck.WordList[0] != "cat" || deck.WordList[1] != "dog" {
		t.Errorf("expected [cat dog], got %v", deck.WordList)
	}
	if deck.Meta.ValidCount != 2 {
		t.Errorf("expected valid count 2, got %d", deck.Meta.ValidCount)
	}
}

func TestGetDeckRejectsUnknownSystemID(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	_, err := uc.GetDeck(context.Background(), "system:bogus")
	if !errors.Is(err, entity.ErrDeckNotFound) {
		t.Fatalf("expected deck not found, got %v", err)
	}
}

func TestDeleteDeckRejectsSystemDecks(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	err := uc.DeleteDeck(context.Background(), "system:jh_j1")
	if !errors.Is(err, entity.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestDeleteDeckRemovesStoredDeck(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	deck, _, err := uc.CreateCustomDeck(context.Background(), "pets", "cat")
	if err != nil {
		t.Fatalf("CreateCustomDeck returned error: %v", err)
	}
	if err := uc.DeleteDeck(context.Background(), deck.ID); err != nil {
		t.Fatalf("DeleteDeck returned error: %v", err)
	}
	if len(store.decks) != 0 {
		t.Errorf("expected deck removed, got %d remaining", len(store.decks))
	}
	if err := uc.DeleteDeck(context.Background(), deck.ID); !errors.Is(err, entity.ErrDeckNotFound) {
		t.Errorf("expected deck not found on second delete, got %v", err)
	}
}

func TestRenameDeck(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	deck, _, err := uc.CreateCustomDeck(context.Background(), "pets", "cat dog")
	if err != nil {
		t.Fatalf("CreateCustomDeck returned error: %v", err)
	}
	renamed, err := uc.RenameDeck(context.Background(), deck.ID, "animals")
	if err != nil {
		t.Fatalf("RenameDeck returned error: %v", err)
	}
	if renamed.Name != "animals" {
		t.Errorf("expected renamed deck, got %q", renamed.Name)
	}
	if store.decks[0].Name != "animals" {
		t.Errorf("rename not persisted: %q", store.decks[0].Name)
	}

	if _, err := uc.RenameDeck(context.Background(), "system:jh", "x"); !errors.Is(err, entity.ErrPermission) {
		t.Errorf("expected permission error for system deck, got %v", err)
	}
}

func TestResolveDeckDispatchesOnNamespace(t *testing.T) {
	store := newFakeStore()
	uc, _ := newTestDeckUsecase(store)

	if _, err := uc.ResolveDeck(context.Background(), "bogus:id"); !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected validation error for unknown namespace, got %v", err)
	}

	words, err := uc.ResolveDeck(context.Background(), "system:adv")
	if err != nil {
		t.Fatalf("ResolveDeck(system:adv) returned error: %v", err)
	}
	if len(words) != 1 || words[0].English != "facilitate" {
		t.Errorf("expected facilitate in adv deck, got %v", words)
	}
}
