// Package httpapi exposes the application over a JSON REST surface. It
// translates requests into usecase calls and domain errors into HTTP
// statuses; no business rules live here.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/entity"
	"github.com/eslkit/vocadeck/internal/session"
	"github.com/eslkit/vocadeck/internal/usecase"
)

// Handler bundles the usecases behind the REST routes.
type Handler struct {
	decks    usecase.DeckUsecase
	words    usecase.WordUsecase
	lookup   usecase.LookupUsecase
	sessions *session.Manager
	logger   *logrus.Logger
}

// NewHandler creates the REST handler.
func NewHandler(
	decks usecase.DeckUsecase,
	words usecase.WordUsecase,
	lookup usecase.LookupUsecase,
	sessions *session.Manager,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		decks:    decks,
		words:    words,
		lookup:   lookup,
		sessions: sessions,
		logger:   logger,
	}
}

// Register mounts every route on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.health)

	mux.HandleFunc("GET /api/decks", h.listDecks)
	mux.HandleFunc("POST /api/decks", h.createDeck)
	mux.HandleFunc("GET /api/decks/{id}", h.getDeck)
	mux.HandleFunc("GET /api/decks/{id}/words", h.deckWords)
	mux.HandleFunc("PUT /api/decks/{id}", h.renameDeck)
	mux.HandleFunc("DELETE /api/decks/{id}", h.deleteDeck)

	mux.HandleFunc("GET /api/words", h.listUserWords)
	mux.HandleFunc("POST /api/words", h.addUserWord)
	mux.HandleFunc("DELETE /api/words/{word}", h.deleteUserWord)

	mux.HandleFunc("GET /api/blocklist", h.listBlocked)
	mux.HandleFunc("POST /api/blocklist", h.blockWord)
	mux.HandleFunc("DELETE /api/blocklist/{word}", h.unblockWord)

	mux.HandleFunc("GET /api/catalog/counts", h.catalogCounts)

	mux.HandleFunc("POST /api/lookup/generate", h.generateWord)
	mux.HandleFunc("POST /api/lookup/identify", h.identifyBaseForm)

	mux.HandleFunc("POST /api/sessions", h.startSession)
	mux.HandleFunc("GET /api/sessions/current", h.currentSession)
	mux.HandleFunc("DELETE /api/sessions/current", h.exitSession)
	mux.HandleFunc("POST /api/sessions/current/advance", h.advance)
	mux.HandleFunc("POST /api/sessions/current/retreat", h.retreat)
	mux.HandleFunc("POST /api/sessions/current/answer", h.checkAnswer)
	mux.HandleFunc("POST /api/sessions/current/reset-score", h.resetScore)
	mux.HandleFunc("POST /api/sessions/current/speak", h.speakCurrent)
	mux.HandleFunc("POST /api/sessions/current/autoplay", h.startAutoplay)
	mux.HandleFunc("DELETE /api/sessions/current/autoplay", h.stopAutoplay)

	mux.HandleFunc("POST /api/speech", h.speak)

	mux.HandleFunc("GET /api/settings", h.getSettings)
	mux.HandleFunc("PUT /api/settings", h.updateSettings)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- decks ----

func (h *Handler) listDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.ListCustomDecks(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if decks == nil {
		decks = []entity.Deck{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"decks": decks})
}

type createDeckRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type createDeckResponse struct {
	Deck     *entity.Deck `json:"deck"`
	Rejected []string     `json:"rejected"`
}

func (h *Handler) createDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	deck, rejected, err := h.decks.CreateCustomDeck(r.Context(), req.Name, req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rejected == nil {
		rejected = []string{}
	}
	writeJSON(w, http.StatusCreated, createDeckResponse{Deck: deck, Rejected: rejected})
}

func (h *Handler) getDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.decks.GetDeck(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (h *Handler) deckWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.decks.ResolveDeck(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if words == nil {
		words = []entity.Word{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

type renameDeckRequest struct {
	Name string `json:"name"`
}

func (h *Handler) renameDeck(w http.ResponseWriter, r *http.Request) {
	var req renameDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	deck, err := h.decks.RenameDeck(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (h *Handler) deleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := h.decks.DeleteDeck(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- user words ----

func (h *Handler) listUserWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.words.ListUserWords(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if words == nil {
		words = []entity.Word{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

func (h *Handler) addUserWord(w http.ResponseWriter, r *http.Request) {
	var word entity.Word
	if err := decodeJSON(r, &word); err != nil {
		h.writeError(w, err)
		return
	}
	saved, err := h.words.AddUserWord(r.Context(), word)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) deleteUserWord(w http.ResponseWriter, r *http.Request) {
	if err := h.words.DeleteUserWord(r.Context(), r.PathValue("word")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- blocklist ----

func (h *Handler) listBlocked(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.words.ListBlockedWords(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if blocked == nil {
		blocked = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": blocked})
}

type blockWordRequest struct {
	Word string `json:"word"`
}

func (h *Handler) blockWord(w http.ResponseWriter, r *http.Request) {
	var req blockWordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.words.BlockWord(r.Context(), req.Word); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unblockWord(w http.ResponseWriter, r *http.Request) {
	if err := h.words.UnblockWord(r.Context(), r.PathValue("word")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- catalog ----

func (h *Handler) catalogCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.words.LevelCounts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// ---- lookup ----

type lookupRequest struct {
	Word     string `json:"word"`
	Sentence string `json:"sentence"`
}

func (h *Handler) generateWord(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	word, err := h.lookup.GenerateWord(r.Context(), req.Word, req.Sentence)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}

func (h *Handler) identifyBaseForm(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	info, err := h.lookup.IdentifyBaseForm(r.Context(), req.Word, req.Sentence)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// ---- sessions ----

type startSessionRequest struct {
	DeckID string `json:"deck_id"`
	Mode   string `json:"mode"`
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	mode := entity.ParseSessionMode(req.Mode)
	if mode == entity.ModeUnspecified {
		h.writeError(w, fmt.Errorf("%w: unknown session mode %q", entity.ErrValidation, req.Mode))
		return
	}
	words, err := h.decks.ResolveDeck(r.Context(), req.DeckID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	snap, err := h.sessions.Start(words, mode)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (h *Handler) currentSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Snapshot())
}

func (h *Handler) exitSession(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Exit()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) advance(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.sessions.Advance()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) retreat(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.sessions.Retreat()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type answerResponse struct {
	Result  session.Result   `json:"result"`
	Session session.Snapshot `json:"session"`
}

func (h *Handler) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var ans session.Answer
	if err := decodeJSON(r, &ans); err != nil {
		h.writeError(w, err)
		return
	}
	result, snap, err := h.sessions.CheckAnswer(ans)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Result: result, Session: snap})
}

func (h *Handler) resetScore(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.sessions.ResetScore()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) speakCurrent(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SpeakCurrent(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) startAutoplay(w http.ResponseWriter, _ *http.Request) {
	if err := h.sessions.StartAutoplay(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stopAutoplay(w http.ResponseWriter, _ *http.Request) {
	h.sessions.StopAutoplay()
	w.WriteHeader(http.StatusNoContent)
}

// ---- speech ----

type speakRequest struct {
	Text string `json:"text"`
}

func (h *Handler) speak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Text == "" {
		h.writeError(w, entity.ErrValidation)
		return
	}
	if err := h.sessions.Speak(r.Context(), req.Text); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- settings ----

func (h *Handler) getSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Settings())
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var s entity.Settings
	if err := decodeJSON(r, &s); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessions.UpdateSettings(s))
}
