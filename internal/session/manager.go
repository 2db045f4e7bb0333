package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslkit/vocadeck/internal/adapter/speech"
	"github.com/eslkit/vocadeck/internal/entity"
)

// Snapshot is the outward view of the running session, shaped for the API
// layer: the current card plus cursor and score.
type Snapshot struct {
	State    string             `json:"state"`
	Mode     entity.SessionMode `json:"mode,omitempty"`
	Current  *entity.Word       `json:"current,omitempty"`
	Position int                `json:"position"`
	Total    int                `json:"total"`
	Score    entity.Score       `json:"score"`
}

// Manager serializes access to the single per-process session. The engine
// itself is not safe for concurrent use; every entry point here takes the
// mutex so HTTP handlers can call in from any goroutine.
type Manager struct {
	mu       sync.Mutex
	engine   *Engine
	narrator speech.Narrator
	logger   *logrus.Logger
	settings entity.Settings

	stopAuto context.CancelFunc
}

// NewManager builds a manager around a fresh engine.
func NewManager(narrator speech.Narrator, logger *logrus.Logger) *Manager {
	return &Manager{
		engine:   New(),
		narrator: narrator,
		logger:   logger,
		settings: entity.DefaultSettings(),
	}
}

// Start begins a new session, replacing any active one. Verb drills keep
// only entries carrying verb forms; a deck with none fails as empty. Quiz
// and drill sessions shuffle the deck so repeat runs do not reward
// memorized order; practice keeps the stored order.
func (m *Manager) Start(items []entity.Word, mode entity.SessionMode) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.haltAutoplayLocked()
	if mode == entity.ModeVerbDrill {
		items = lo.Filter(items, func(w entity.Word, _ int) bool { return w.HasVerbForms() })
	}
	if mode.Scored() {
		items = shuffled(items)
	}
	if err := m.engine.Start(items, mode); err != nil {
		return Snapshot{}, err
	}
	return m.snapshotLocked(), nil
}

// Exit ends the session and silences any narration in flight.
func (m *Manager) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.haltAutoplayLocked()
	m.engine.Finish()
	m.narrator.Cancel()
}

// Snapshot reports the current session without mutating it.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Advance moves to the next card.
func (m *Manager) Advance() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.engine.Advance(); err != nil {
		return Snapshot{}, err
	}
	return m.snapshotLocked(), nil
}

// Retreat moves to the previous card.
func (m *Manager) Retreat() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.engine.Retreat(); err != nil {
		return Snapshot{}, err
	}
	return m.snapshotLocked(), nil
}

// CheckAnswer grades the submitted answer for the current card.
func (m *Manager) CheckAnswer(ans Answer) (Result, Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result, err := m.engine.CheckAnswer(ans)
	if err != nil {
		return Result{}, Snapshot{}, err
	}
	return result, m.snapshotLocked(), nil
}

// ResetScore zeroes the running score without moving the cursor.
func (m *Manager) ResetScore() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.engine.ResetScore(); err != nil {
		return Snapshot{}, err
	}
	return m.snapshotLocked(), nil
}

// Speak narrates arbitrary text at the configured speech rate.
func (m *Manager) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	rate := m.settings.SpeechRate
	m.mu.Unlock()
	return m.narrator.Speak(ctx, text, rate)
}

// SpeakCurrent narrates the card under the cursor.
func (m *Manager) SpeakCurrent(ctx context.Context) error {
	m.mu.Lock()
	word, err := m.engine.Current()
	rate := m.settings.SpeechRate
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.narrator.Speak(ctx, word.English, rate)
}

// Settings returns the current playback settings.
func (m *Manager) Settings() entity.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// UpdateSettings applies new playback settings, clamping the rate and
// starting or stopping autoplay as the flag changes.
func (m *Manager) UpdateSettings(s entity.Settings) entity.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.SpeechRate = entity.ClampRate(s.SpeechRate)
	wasAuto := m.settings.AutoPlay
	m.settings = s

	if s.AutoPlay && !wasAuto {
		m.startAutoplayLocked()
	}
	if !s.AutoPlay && wasAuto {
		m.haltAutoplayLocked()
		m.narrator.Cancel()
	}
	return m.settings
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		State: m.engine.State().String(),
		Score: m.engine.Score(),
	}
	snap.Position, snap.Total = m.engine.Position()
	if m.engine.State() == StateActive {
		snap.Mode = m.engine.Mode()
		if word, err := m.engine.Current(); err == nil {
			snap.Current = &word
		}
	}
	return snap
}

func (m *Manager) haltAutoplayLocked() {
	if m.stopAuto != nil {
		m.stopAuto()
		m.stopAuto = nil
	}
}

func shuffled(items []entity.Word) []entity.Word {
	out := make([]entity.Word, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// sessionMode guard used by autoplay; practice is the only mode that reads
// cards aloud on a timer.
func (m *Manager) autoplayEligibleLocked() error {
	if m.engine.State() != StateActive {
		return fmt.Errorf("%w: no active session", entity.ErrInvalidState)
	}
	if m.engine.Mode() != entity.ModePractice {
		return fmt.Errorf("%w: autoplay only runs in practice mode", entity.ErrInvalidState)
	}
	return nil
}
