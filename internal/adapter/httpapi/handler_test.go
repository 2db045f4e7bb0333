package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/adapter/speech"
	"github.com/eslkit/vocadeck/internal/entity"
	"github.com/eslkit/vocadeck/internal/session"
)

type fakeDecks struct {
	words []entity.Word
	decks []entity.Deck
}

func (f *fakeDecks) ResolveDeck(ctx context.Context, deckID string) ([]entity.Word, error) {
	if deckID == "custom:missing" {
		return nil, fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
	}
	if deckID == "custom:empty" {
		return nil, nil
	}
	return f.words, nil
}

func (f *fakeDecks) ResolveSystemDeck(ctx context.Context, tier entity.Tier, level entity.Level) ([]entity.Word, error) {
	return f.words, nil
}

func (f *fakeDecks) ResolveCustomDeck(ctx context.Context, deckID string) ([]entity.Word, error) {
	return f.words, nil
}

func (f *fakeDecks) CreateCustomDeck(ctx context.Context, name, rawText string) (*entity.Deck, []string, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, nil, fmt.Errorf("%w: enter at least one word", entity.ErrValidation)
	}
	deck := entity.Deck{ID: "custom:1", Name: name, WordList: strings.Fields(rawText)}
	f.decks = append(f.decks, deck)
	return &deck, []string{"zebra"}, nil
}

func (f *fakeDecks) RenameDeck(ctx context.Context, deckID, name string) (*entity.Deck, error) {
	return &entity.Deck{ID: deckID, Name: name}, nil
}

func (f *fakeDecks) DeleteDeck(ctx context.Context, deckID string) error {
	if !entity.IsCustomDeckID(deckID) {
		return fmt.Errorf("%w: only custom decks can be deleted", entity.ErrPermission)
	}
	return nil
}

func (f *fakeDecks) ListCustomDecks(ctx context.Context) ([]entity.Deck, error) {
	return f.decks, nil
}

func (f *fakeDecks) GetDeck(ctx context.Context, deckID string) (*entity.Deck, error) {
	for i := range f.decks {
		if f.decks[i].ID == deckID {
			return &f.decks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", entity.ErrDeckNotFound, deckID)
}

type fakeWords struct {
	blocked []string
}

func (f *fakeWords) AddUserWord(ctx context.Context, word entity.Word) (*entity.Word, error) {
	if word.English == "" || word.Translation == "" {
		return nil, fmt.Errorf("%w: headword and translation required", entity.ErrValidation)
	}
	return &word, nil
}

func (f *fakeWords) DeleteUserWord(ctx context.Context, headword string) error {
	if headword == "missing" {
		return fmt.Errorf("%w: %s", entity.ErrWordNotFound, headword)
	}
	return nil
}

func (f *fakeWords) ListUserWords(ctx context.Context) ([]entity.Word, error) {
	return nil, nil
}

func (f *fakeWords) BlockWord(ctx context.Context, headword string) error {
	f.blocked = append(f.blocked, headword)
	return nil
}

func (f *fakeWords) UnblockWord(ctx context.Context, headword string) error { return nil }

func (f *fakeWords) ListBlockedWords(ctx context.Context) ([]string, error) {
	return f.blocked, nil
}

func (f *fakeWords) LevelCounts(ctx context.Context) (entity.LevelCounts, error) {
	var counts entity.LevelCounts
	counts.Add(entity.LevelJ1)
	return counts, nil
}

type fakeLookup struct{}

func (fakeLookup) GenerateWord(ctx context.Context, word, sentence string) (*entity.Word, error) {
	if word == "" {
		return nil, fmt.Errorf("%w: word required", entity.ErrValidation)
	}
	if word == "down" {
		return nil, fmt.Errorf("%w: status 503", entity.ErrRemoteService)
	}
	return &entity.Word{English: word, POS: "n.", Translation: "翻譯"}, nil
}

func (fakeLookup) IdentifyBaseForm(ctx context.Context, word, sentence string) (*entity.BaseFormInfo, error) {
	return &entity.BaseFormInfo{BaseForm: "run", Inflection: "past tense"}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeDecks) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	decks := &fakeDecks{words: []entity.Word{
		{English: "cat", Translation: "貓"},
		{English: "dog", Translation: "狗"},
	}}
	manager := session.NewManager(speech.Noop{}, logger)
	h := NewHandler(decks, &fakeWords{}, fakeLookup{}, manager, logger)

	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, decks
}

func doJSON(t *testing.T, method, url string, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestCreateDeckEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/decks", `{"name": "pets", "text": "cat dog zebra"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	rejected, ok := body["rejected"].([]any)
	if !ok || len(rejected) != 1 {
		t.Errorf("expected one rejected token, got %v", body["rejected"])
	}
}

func TestCreateDeckValidationMapsTo400(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/decks", `{"name": "x", "text": "  "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteSystemDeckMapsTo403(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/api/decks/system:jh_j1", "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestDeckWordsNotFoundMapsTo404(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/decks/custom:missing/words", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", `{"deck_id": "custom:1", "mode": "quiz"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if body["state"] != "active" {
		t.Errorf("expected active session, got %v", body["state"])
	}
	if body["total"] != float64(2) {
		t.Errorf("expected 2 items, got %v", body["total"])
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/sessions/current/answer", `{"input": "whatever"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("answer: expected 200, got %d", resp.StatusCode)
	}
	if _, ok := body["result"]; !ok {
		t.Errorf("expected result in body, got %v", body)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/sessions/current/advance", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("advance: expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/sessions/current", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("exit: expected 204, got %d", resp.StatusCode)
	}

	// Answering after exit is a state conflict.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/sessions/current/answer", `{"input": "x"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 after exit, got %d", resp.StatusCode)
	}
}

func TestStartSessionEmptyDeckMapsTo422(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", `{"deck_id": "custom:empty", "mode": "practice"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestStartSessionUnknownModeMapsTo400(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/sessions", `{"deck_id": "custom:1", "mode": "speedrun"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLookupRemoteFailureMapsTo502(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/lookup/generate", `{"word": "down"}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestLookupGenerate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/lookup/generate", `{"word": "cat"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["english"] != "cat" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestSettingsClampRate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/settings", `{"speech_rate": 9.0}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["speech_rate"] != float64(entity.MaxSpeechRate) {
		t.Errorf("expected clamped rate, got %v", body["speech_rate"])
	}
}

func TestBlocklistEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/blocklist", `{"word": "dog"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("block: expected 204, got %d", resp.StatusCode)
	}
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/blocklist", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	words, ok := body["words"].([]any)
	if !ok || len(words) != 1 || words[0] != "dog" {
		t.Errorf("unexpected blocklist: %v", body["words"])
	}
}

func TestCatalogCounts(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/catalog/counts", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["j1"] != float64(1) {
		t.Errorf("unexpected counts: %v", body)
	}
}
