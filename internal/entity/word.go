package entity

import (
	"strings"
	"time"
)

// Level is the fine-grained proficiency bucket a word belongs to.
type Level string

const (
	LevelUnspecified Level = ""
	LevelJ1          Level = "J1"
	LevelJ2          Level = "J2"
	LevelJ3          Level = "J3"
	LevelH1          Level = "H1"
	LevelH2          Level = "H2"
	LevelH3          Level = "H3"
	LevelADV         Level = "ADV"
)

// Tier is the coarse schooling bucket (junior high, senior high, advanced).
type Tier string

const (
	TierUnspecified Tier = ""
	TierJH          Tier = "JH"
	TierSH          Tier = "SH"
	TierADV         Tier = "ADV"
)

// Word is a single vocabulary entry. The canonical shape produced by the
// catalog normalizer; internal code never branches on field-name variants.
type Word struct {
	English     string     `json:"english"`
	POS         string     `json:"pos"`
	Translation string     `json:"translation"`
	Level       Level      `json:"level"`
	SchoolLevel Tier       `json:"school_level,omitempty"`
	Phonetic    string     `json:"phonetic,omitempty"`
	ExampleEn   string     `json:"example_en,omitempty"`
	ExampleZh   string     `json:"example_zh,omitempty"`
	Verb        *VerbForms `json:"verb,omitempty"`
	Synonyms    []string   `json:"synonyms,omitempty"`
	Family      string     `json:"family,omitempty"`
	FamilyID    string     `json:"family_id,omitempty"`
	Pattern     string     `json:"pattern,omitempty"`
	PatternZh   string     `json:"pattern_zh,omitempty"`
}

// VerbForms holds the principal parts of an irregular verb. Past may carry
// alternates as a single literal string ("was/were"); answer checking
// compares against the whole literal, slash included.
type VerbForms struct {
	Base string `json:"base"`
	Past string `json:"past"`
	PP   string `json:"pp"`
}

// Key returns the case-insensitive lookup key for the word.
func (w Word) Key() string {
	return strings.ToLower(strings.TrimSpace(w.English))
}

// HasVerbForms reports whether the entry can appear in a verb drill.
func (w Word) HasVerbForms() bool {
	return w.Verb != nil && (w.Verb.Past != "" || w.Verb.PP != "")
}

// BaseFormInfo is the result of the base-form identification lookup.
type BaseFormInfo struct {
	BaseForm          string `json:"base_form"`
	POS               string `json:"pos"`
	Inflection        string `json:"inflection"`
	ContextualMeaning string `json:"contextual_meaning"`
}

// LevelCounts aggregates per-level word counts plus tier totals.
type LevelCounts struct {
	J1       int `json:"j1"`
	J2       int `json:"j2"`
	J3       int `json:"j3"`
	H1       int `json:"h1"`
	H2       int `json:"h2"`
	H3       int `json:"h3"`
	ADV      int `json:"adv"`
	JHTotal  int `json:"jh_total"`
	SHTotal  int `json:"sh_total"`
	AllTotal int `json:"all_total"`
}

// Add counts one word at the given level.
func (c *LevelCounts) Add(level Level) {
	switch level {
	case LevelJ1:
		c.J1++
	case LevelJ2:
		c.J2++
	case LevelJ3:
		c.J3++
	case LevelH1:
		c.H1++
	case LevelH2:
		c.H2++
	case LevelH3:
		c.H3++
	case LevelADV:
		c.ADV++
	default:
		return
	}
	c.JHTotal = c.J1 + c.J2 + c.J3
	c.SHTotal = c.H1 + c.H2 + c.H3
	c.AllTotal = c.JHTotal + c.SHTotal + c.ADV
}

// ParseLevel converts an arbitrary string into a supported Level value.
func ParseLevel(code string) Level {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "J1":
		return LevelJ1
	case "J2":
		return LevelJ2
	case "J3":
		return LevelJ3
	case "H1":
		return LevelH1
	case "H2":
		return LevelH2
	case "H3":
		return LevelH3
	case "ADV", "ADVANCED":
		return LevelADV
	default:
		return LevelUnspecified
	}
}

// ParseTier converts an arbitrary string into a supported Tier value.
func ParseTier(code string) Tier {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "JH":
		return TierJH
	case "SH":
		return TierSH
	case "ADV", "ADVANCED":
		return TierADV
	default:
		return TierUnspecified
	}
}

// TierOf maps a level to its schooling tier.
func TierOf(level Level) Tier {
	switch level {
	case LevelJ1, LevelJ2, LevelJ3:
		return TierJH
	case LevelH1, LevelH2, LevelH3:
		return TierSH
	case LevelADV:
		return TierADV
	default:
		return TierUnspecified
	}
}

// NormalizeWordToken lowercases and trims a raw headword token.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}

// NewUserFamilyID derives a family id for a user-authored word.
func NewUserFamilyID(now time.Time) string {
	return "USER_" + formatEpochMillis(now)
}
