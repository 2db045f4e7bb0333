// Package speech adapts text-to-speech playback. The narration contract
// is last-call-wins: starting new playback or cancelling stops whatever
// was speaking, with no queueing.
package speech

import "context"

// Narrator plays spoken text. Rate is the absolute speech rate after the
// caller has applied the user's base speed and any per-call multiplier.
type Narrator interface {
	Speak(ctx context.Context, text string, rate float64) error
	Cancel()
}

// Noop is the narrator used when no engine endpoint is configured.
type Noop struct{}

func (Noop) Speak(context.Context, string, float64) error { return nil }

func (Noop) Cancel() {}
