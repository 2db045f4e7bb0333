package entity

import "strings"

// SessionMode selects the practice style driven by the session engine.
type SessionMode string

const (
	ModeUnspecified SessionMode = ""
	ModePractice    SessionMode = "practice"
	ModeQuiz        SessionMode = "quiz"
	ModeVerbDrill   SessionMode = "verb3"
)

// ParseSessionMode converts an arbitrary string into a supported mode.
func ParseSessionMode(code string) SessionMode {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "practice", "flashcard":
		return ModePractice
	case "quiz":
		return ModeQuiz
	case "verb3", "verbdrill", "verb-drill":
		return ModeVerbDrill
	default:
		return ModeUnspecified
	}
}

// Scored reports whether the mode keeps a correct/wrong score.
func (m SessionMode) Scored() bool {
	return m == ModeQuiz || m == ModeVerbDrill
}

// Wraps reports whether advancing past the last card cycles back to the
// first. Flashcard review loops endlessly; quiz and drill terminate.
func (m SessionMode) Wraps() bool {
	return m == ModePractice
}

// Score tracks per-session answer tallies for quiz and drill modes.
type Score struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}
