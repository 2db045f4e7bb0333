package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eslkit/vocadeck/internal/entity"
)

// NormalizeRecord maps an external JSON object into the canonical Word
// shape. Historical exports and model output disagree on field names
// (english/English/word, example_en/exampleEn, ...); this is the single
// place those variants are resolved. Entries without a headword come back
// with an empty English field and are dropped by the callers.
func NormalizeRecord(raw map[string]any) entity.Word {
	w := entity.Word{
		English:     pickString(raw, "english", "English", "word"),
		POS:         pickString(raw, "pos", "POS", "partOfSpeech"),
		Translation: pickString(raw, "translation", "Translation", "chinese", "Chinese", "zh"),
		Level:       entity.ParseLevel(pickString(raw, "level", "Level")),
		SchoolLevel: entity.ParseTier(pickString(raw, "schoolLevel", "school_level")),
		Phonetic:    pickString(raw, "phonetic", "Phonetic"),
		ExampleEn:   pickString(raw, "example_en", "exampleEn"),
		ExampleZh:   pickString(raw, "example_zh", "exampleZh"),
		Synonyms:    pickStringSlice(raw, "synonyms"),
		Family:      pickString(raw, "family", "family_key"),
		FamilyID:    pickString(raw, "family_id", "familyId"),
		Pattern:     pickString(raw, "pattern"),
		PatternZh:   pickString(raw, "patternZh", "pattern_zh"),
	}
	w.English = strings.TrimSpace(w.English)
	if w.SchoolLevel == entity.TierUnspecified {
		w.SchoolLevel = entity.TierOf(w.Level)
	}
	if verb := pickVerb(raw, "verb"); verb != nil {
		if verb.Base == "" {
			verb.Base = w.English
		}
		w.Verb = verb
	}
	return w
}

// DecodeWords parses a JSON array of word objects in any of the known
// historical shapes and returns the canonical records, skipping entries
// without a headword.
func DecodeWords(data []byte) ([]entity.Word, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	words := make([]entity.Word, 0, len(rows))
	for _, row := range rows {
		w := NormalizeRecord(row)
		if w.English == "" {
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

func pickString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func pickStringSlice(raw map[string]any, key string) []string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func pickVerb(raw map[string]any, key string) *entity.VerbForms {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	forms := &entity.VerbForms{
		Base: pickString(obj, "base"),
		Past: pickString(obj, "past"),
		PP:   pickString(obj, "pp", "ppart", "pastParticiple"),
	}
	if forms.Past == "" && forms.PP == "" {
		return nil
	}
	return forms
}
