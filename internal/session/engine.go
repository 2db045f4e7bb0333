// Package session drives a single practice run over a fixed word list.
// The engine is mode-agnostic: flashcard review loops endlessly, quiz and
// verb drill clamp at the boundaries and keep score.
package session

import (
	"fmt"
	"strings"

	"github.com/eslkit/vocadeck/internal/entity"
)

// State is the engine lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateActive
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Answer carries one user response. Quiz mode reads Input; verb drill
// reads Past and Participle. Skip marks the item wrong without consulting
// the inputs.
type Answer struct {
	Input      string `json:"input"`
	Past       string `json:"past"`
	Participle string `json:"participle"`
	Skip       bool   `json:"skip"`
}

// Result reports the outcome of an answer check. Expected holds the
// stored target so the caller can display it on a miss.
type Result struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
}

// Engine is the session state machine. Not safe for concurrent use; the
// manager serializes access.
type Engine struct {
	state      State
	mode       entity.SessionMode
	items      []entity.Word
	pos        int
	score      entity.Score
	answered   bool
	lastResult Result
}

// New returns an idle engine.
func New() *Engine {
	return &Engine{}
}

// Start activates the engine over the given items. The list is taken
// verbatim: callers shuffle beforehand for quiz and drill modes. Starting
// over an already-active engine replaces the prior session atomically.
func (e *Engine) Start(items []entity.Word, mode entity.SessionMode) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: cannot start %s session", entity.ErrEmptyDeck, mode)
	}
	if mode != entity.ModePractice && mode != entity.ModeQuiz && mode != entity.ModeVerbDrill {
		return fmt.Errorf("%w: unknown mode %q", entity.ErrValidation, mode)
	}
	e.state = StateActive
	e.mode = mode
	e.items = items
	e.pos = 0
	e.score = entity.Score{}
	e.answered = false
	e.lastResult = Result{}
	return nil
}

// State returns the current lifecycle phase.
func (e *Engine) State() State { return e.state }

// Mode returns the active session mode.
func (e *Engine) Mode() entity.SessionMode { return e.mode }

// Current returns the word at the cursor.
func (e *Engine) Current() (entity.Word, error) {
	if e.state != StateActive {
		return entity.Word{}, fmt.Errorf("%w: no current item in %s state", entity.ErrInvalidState, e.state)
	}
	return e.items[e.pos], nil
}

// Position reports the cursor and the item count.
func (e *Engine) Position() (pos, total int) {
	return e.pos, len(e.items)
}

// Score returns the running tally.
func (e *Engine) Score() entity.Score { return e.score }

// Advance moves the cursor forward. Practice mode wraps past the end back
// to zero; quiz and drill no-op at the last item — finishing the session
// is a separate, caller-driven action.
func (e *Engine) Advance() error {
	if e.state != StateActive {
		return fmt.Errorf("%w: cannot advance in %s state", entity.ErrInvalidState, e.state)
	}
	if e.mode.Wraps() {
		e.setPos((e.pos + 1) % len(e.items))
		return nil
	}
	if e.pos < len(e.items)-1 {
		e.setPos(e.pos + 1)
	}
	return nil
}

// Retreat moves the cursor backward, symmetric to Advance.
func (e *Engine) Retreat() error {
	if e.state != StateActive {
		return fmt.Errorf("%w: cannot retreat in %s state", entity.ErrInvalidState, e.state)
	}
	if e.mode.Wraps() {
		e.setPos((e.pos + len(e.items) - 1) % len(e.items))
		return nil
	}
	if e.pos > 0 {
		e.setPos(e.pos - 1)
	}
	return nil
}

// CheckAnswer grades the current item. Comparisons are ASCII
// case-insensitive on trimmed input. A second check on the same item
// without an intervening move is a no-op returning the first result, so
// the score counts each item at most once.
//
// Known rough edge preserved from the source data: a drill field holding
// alternates as one literal ("was/were") only matches that whole literal,
// slash included.
func (e *Engine) CheckAnswer(ans Answer) (Result, error) {
	if e.state != StateActive {
		return Result{}, fmt.Errorf("%w: cannot answer in %s state", entity.ErrInvalidState, e.state)
	}
	if !e.mode.Scored() {
		return Result{}, fmt.Errorf("%w: %s mode has no answers", entity.ErrInvalidState, e.mode)
	}
	if e.answered {
		return e.lastResult, nil
	}

	word := e.items[e.pos]
	var result Result
	switch e.mode {
	case entity.ModeQuiz:
		result.Expected = word.English
		result.Correct = !ans.Skip && foldEqual(ans.Input, word.English)
	case entity.ModeVerbDrill:
		if word.Verb == nil {
			return Result{}, fmt.Errorf("%w: %q has no verb forms", entity.ErrValidation, word.English)
		}
		result.Expected = word.Verb.Past + " / " + word.Verb.PP
		result.Correct = !ans.Skip &&
			foldEqual(ans.Past, word.Verb.Past) &&
			foldEqual(ans.Participle, word.Verb.PP)
	}

	if result.Correct {
		e.score.Correct++
	} else {
		e.score.Wrong++
	}
	e.answered = true
	e.lastResult = result
	return result, nil
}

// ResetScore zeroes the tally without restarting the session, used when
// switching decks mid-flow.
func (e *Engine) ResetScore() error {
	if e.state != StateActive {
		return fmt.Errorf("%w: cannot reset score in %s state", entity.ErrInvalidState, e.state)
	}
	e.score = entity.Score{}
	e.answered = false
	e.lastResult = Result{}
	return nil
}

// Finish ends the session. Further operations other than Start fail.
func (e *Engine) Finish() {
	if e.state == StateActive {
		e.state = StateFinished
	}
}

// setPos moves the cursor and re-arms the per-item answer guard. The
// guard stays set when a boundary no-op leaves the cursor in place.
func (e *Engine) setPos(pos int) {
	if pos != e.pos {
		e.pos = pos
		e.answered = false
		e.lastResult = Result{}
	}
}

func foldEqual(input, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(expected))
}
