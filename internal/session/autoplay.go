package session

import (
	"context"
	"time"
)

// Autoplay pacing. The pause gives the learner time to repeat the word
// before the example sentence plays; the sentence itself is read slightly
// slower than the headword.
const (
	_autoplayPause        = 1500 * time.Millisecond
	_autoplaySentenceRate = 0.9
)

// StartAutoplay begins the background read-through of the practice deck:
// word, pause, example sentence, pause, advance, repeat. It returns
// entity.ErrInvalidState when no practice session is active. A second call
// restarts the loop from the current card.
func (m *Manager) StartAutoplay() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.autoplayEligibleLocked(); err != nil {
		return err
	}
	m.settings.AutoPlay = true
	m.startAutoplayLocked()
	return nil
}

// StopAutoplay halts the background read-through and cancels any narration
// in flight. Stopping when autoplay is idle is a no-op.
func (m *Manager) StopAutoplay() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.AutoPlay = false
	m.haltAutoplayLocked()
	m.narrator.Cancel()
}

func (m *Manager) startAutoplayLocked() {
	m.haltAutoplayLocked()
	if m.autoplayEligibleLocked() != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.stopAuto = cancel
	go m.autoplayLoop(ctx)
}

func (m *Manager) autoplayLoop(ctx context.Context) {
	for {
		m.mu.Lock()
		if m.autoplayEligibleLocked() != nil {
			m.mu.Unlock()
			return
		}
		word, err := m.engine.Current()
		rate := m.settings.SpeechRate
		m.mu.Unlock()
		if err != nil {
			return
		}

		if err := m.narrator.Speak(ctx, word.English, rate); err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.WithError(err).Warn("autoplay narration failed")
		}
		if !sleepCtx(ctx, _autoplayPause) {
			return
		}

		if word.ExampleEn != "" {
			if err := m.narrator.Speak(ctx, word.ExampleEn, rate*_autoplaySentenceRate); err != nil {
				if ctx.Err() != nil {
					return
				}
				m.logger.WithError(err).Warn("autoplay narration failed")
			}
			if !sleepCtx(ctx, _autoplayPause) {
				return
			}
		}

		m.mu.Lock()
		if m.autoplayEligibleLocked() != nil {
			m.mu.Unlock()
			return
		}
		if err := m.engine.Advance(); err != nil {
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
