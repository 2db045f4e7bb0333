// Package catalog loads the bundled vocabulary reference list. The data
// ships inside the binary; entries are normalized once at load time and
// immutable afterwards.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/eslkit/vocadeck/internal/entity"
)

//go:embed data/words.json data/verbs.json
var dataFS embed.FS

// Catalog is the immutable bundled word list.
type Catalog struct {
	words []entity.Word
}

// Load parses the embedded word and verb data. Verb-table entries whose
// base form already exists as a word entry only contribute their principal
// parts; the rest become standalone verb records so the drill can reach
// them.
func Load() (*Catalog, error) {
	wordBytes, err := dataFS.ReadFile("data/words.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled words: %w", err)
	}
	words, err := DecodeWords(wordBytes)
	if err != nil {
		return nil, fmt.Errorf("parse bundled words: %w", err)
	}

	verbBytes, err := dataFS.ReadFile("data/verbs.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled verbs: %w", err)
	}
	verbs, err := decodeVerbTable(verbBytes)
	if err != nil {
		return nil, fmt.Errorf("parse bundled verbs: %w", err)
	}

	byKey := make(map[string]int, len(words))
	for i, w := range words {
		byKey[w.Key()] = i
	}
	for _, v := range verbs {
		if idx, ok := byKey[v.Key()]; ok {
			if words[idx].Verb == nil {
				words[idx].Verb = v.Verb
			}
			continue
		}
		words = append(words, v)
		byKey[v.Key()] = len(words) - 1
	}

	return &Catalog{words: words}, nil
}

// New builds a catalog from an explicit word list.
func New(words []entity.Word) *Catalog {
	return &Catalog{words: words}
}

// Words returns the full normalized list in bundled order. Callers must
// not mutate the returned slice.
func (c *Catalog) Words() []entity.Word {
	return c.words
}

// Len reports the number of bundled entries.
func (c *Catalog) Len() int { return len(c.words) }

// Counts tallies words per level across the catalog plus any extra
// (user-added) records.
func (c *Catalog) Counts(extra []entity.Word) entity.LevelCounts {
	var counts entity.LevelCounts
	for _, w := range c.words {
		counts.Add(w.Level)
	}
	for _, w := range extra {
		counts.Add(w.Level)
	}
	return counts
}

// verbRow is the shape of the bundled irregular-verb table.
type verbRow struct {
	Base        string `json:"base"`
	Past        string `json:"past"`
	PPart       string `json:"ppart"`
	Level       string `json:"level"`
	Translation string `json:"translation"`
}

func decodeVerbTable(data []byte) ([]entity.Word, error) {
	var rows []verbRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	words := make([]entity.Word, 0, len(rows))
	for _, row := range rows {
		if row.Base == "" {
			continue
		}
		level := entity.ParseLevel(row.Level)
		words = append(words, entity.Word{
			English:     row.Base,
			POS:         "v.",
			Translation: row.Translation,
			Level:       level,
			SchoolLevel: entity.TierOf(level),
			Verb:        &entity.VerbForms{Base: row.Base, Past: row.Past, PP: row.PPart},
		})
	}
	return words, nil
}
