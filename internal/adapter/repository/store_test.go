package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/entity"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store := NewStore(db, "sqlite3", logger)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return store
}

func TestInitIsIdempotentAndStampsSchemaVersion(t *testing.T) {
	store := newTestStore(t)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	var version int
	if err := store.kv.loadJSON(context.Background(), keySchemaVersion, &version); err != nil {
		t.Fatalf("load schema version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("expected schema version %d, got %d", schemaVersion, version)
	}
}

func TestUserWordsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	words, err := store.LoadUserWords(ctx)
	if err != nil {
		t.Fatalf("LoadUserWords on empty store: %v", err)
	}
	if len(words) != 0 {
		t.Fatalf("expected empty list, got %v", words)
	}

	in := []entity.Word{
		{English: "cat", Translation: "貓", Level: entity.LevelJ1, SchoolLevel: entity.TierJH},
		{English: "run", Translation: "跑", Verb: &entity.VerbForms{Base: "run", Past: "ran", PP: "run"}},
	}
	if err := store.SaveUserWords(ctx, in); err != nil {
		t.Fatalf("SaveUserWords: %v", err)
	}

	out, err := store.LoadUserWords(ctx)
	if err != nil {
		t.Fatalf("LoadUserWords: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 words, got %d", len(out))
	}
	if out[1].Verb == nil || out[1].Verb.Past != "ran" {
		t.Errorf("verb forms lost in round trip: %+v", out[1].Verb)
	}
}

func TestBlockedWordsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveBlockedWords(ctx, []string{"dog", "cat"}); err != nil {
		t.Fatalf("SaveBlockedWords: %v", err)
	}
	blocked, err := store.LoadBlockedWords(ctx)
	if err != nil {
		t.Fatalf("LoadBlockedWords: %v", err)
	}
	if len(blocked) != 2 || blocked[0] != "dog" {
		t.Fatalf("unexpected blocklist: %v", blocked)
	}
}

func TestDeckUpsertAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := entity.Deck{ID: "custom:1", Name: "first", WordList: []string{"cat"}, CreatedAt: time.Now().UTC()}
	second := entity.Deck{ID: "custom:2", Name: "second", WordList: []string{"dog"}, CreatedAt: time.Now().UTC()}
	if err := store.SaveDeck(ctx, first); err != nil {
		t.Fatalf("SaveDeck first: %v", err)
	}
	if err := store.SaveDeck(ctx, second); err != nil {
		t.Fatalf("SaveDeck second: %v", err)
	}

	// Updating an existing deck keeps its slot.
	first.Name = "renamed"
	if err := store.SaveDeck(ctx, first); err != nil {
		t.Fatalf("SaveDeck update: %v", err)
	}

	decks, err := store.ListDecks(ctx)
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(decks) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(decks))
	}
	if decks[0].ID != "custom:1" || decks[0].Name != "renamed" {
		t.Errorf("expected in-place update at slot 0, got %+v", decks[0])
	}
	if decks[1].ID != "custom:2" {
		t.Errorf("expected stable order, got %+v", decks[1])
	}
}

func TestGetDeckMissReturnsNil(t *testing.T) {
	store := newTestStore(t)

	deck, err := store.GetDeck(context.Background(), "custom:nope")
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if deck != nil {
		t.Errorf("expected nil miss, got %+v", deck)
	}
}

func TestDeleteDeck(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveDeck(ctx, entity.Deck{ID: "custom:1", Name: "x"}); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if err := store.DeleteDeck(ctx, "custom:1"); err != nil {
		t.Fatalf("DeleteDeck: %v", err)
	}
	decks, err := store.ListDecks(ctx)
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(decks) != 0 {
		t.Errorf("expected empty deck list, got %v", decks)
	}
}

func TestLoadJSONToleratesCorruptPayload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.kv.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value) VALUES (?, ?)`, keyUserWords, "{not json")
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	words, err := store.LoadUserWords(ctx)
	if err != nil {
		t.Fatalf("expected fail-soft read, got error: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected empty result for corrupt payload, got %v", words)
	}
}

func TestRebindForPostgres(t *testing.T) {
	rebind := rebindFor("pgx")
	got := rebind(`INSERT INTO kv_store (key, value) VALUES (?, ?)`)
	want := `INSERT INTO kv_store (key, value) VALUES ($1, $2)`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	ident := rebindFor("sqlite3")
	if q := ident("SELECT ?"); q != "SELECT ?" {
		t.Errorf("expected sqlite query unchanged, got %q", q)
	}
}
