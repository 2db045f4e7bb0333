package entity

import (
	"strconv"
	"strings"
	"time"
)

// Deck id namespaces. System decks are derived on demand and never
// persisted; custom decks are stored with an epoch-millisecond suffix.
const (
	SystemDeckPrefix = "system:"
	CustomDeckPrefix = "custom:"
)

// Deck is an addressable, ordered collection of headwords usable to start a
// practice session. WordList stores headword keys only; full records are
// resolved lazily against the live catalog union.
type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WordList  []string  `json:"word_list"`
	CreatedAt time.Time `json:"created_at"`
	Meta      DeckMeta  `json:"meta"`
}

// DeckMeta records how many input tokens validated when the deck was built.
type DeckMeta struct {
	ValidCount   int `json:"valid_count"`
	InvalidCount int `json:"invalid_count"`
}

// IsCustomDeckID reports whether the id lives in the user-deck namespace.
func IsCustomDeckID(id string) bool {
	return strings.HasPrefix(id, CustomDeckPrefix)
}

// IsSystemDeckID reports whether the id names a catalog-derived deck.
func IsSystemDeckID(id string) bool {
	return strings.HasPrefix(id, SystemDeckPrefix)
}

// NewCustomDeckID builds a deck id in the custom namespace from a timestamp.
func NewCustomDeckID(now time.Time) string {
	return CustomDeckPrefix + formatEpochMillis(now)
}

// SystemDeckID builds the id of a catalog-derived deck. The level part is
// omitted for the advanced tier, which has no sub-levels.
func SystemDeckID(tier Tier, level Level) string {
	id := SystemDeckPrefix + strings.ToLower(string(tier))
	if level != LevelUnspecified {
		id += "_" + strings.ToLower(string(level))
	}
	return id
}

// ParseSystemDeckID splits a system deck id into tier and level. The level
// is unspecified for tier-only ids such as "system:adv".
func ParseSystemDeckID(id string) (Tier, Level, bool) {
	rest, ok := strings.CutPrefix(id, SystemDeckPrefix)
	if !ok || rest == "" {
		return TierUnspecified, LevelUnspecified, false
	}
	parts := strings.SplitN(rest, "_", 2)
	tier := ParseTier(parts[0])
	if tier == TierUnspecified {
		return TierUnspecified, LevelUnspecified, false
	}
	if len(parts) == 1 {
		return tier, LevelUnspecified, true
	}
	level := ParseLevel(parts[1])
	if level == LevelUnspecified {
		return TierUnspecified, LevelUnspecified, false
	}
	return tier, level, true
}

func formatEpochMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
