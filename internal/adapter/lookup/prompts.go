package lookup

import "fmt"

const generateSystemPrompt = `You are an English vocabulary assistant for Chinese-speaking learners. ` +
	`Always answer with a single JSON object and nothing else.`

const identifySystemPrompt = `You are an English morphology assistant. ` +
	`Always answer with a single JSON object and nothing else.`

func generateWordPrompt(word, sentence string) string {
	p := fmt.Sprintf(`Create a vocabulary record for the English word "%s".
Respond with a JSON object with exactly these fields:
{
  "english": "the word",
  "pos": "part of speech, one of: n. v. adj. adv. prep. conj. pron. int.",
  "translation": "Traditional Chinese translation",
  "phonetic": "IPA phonetic transcription",
  "example_en": "a short example sentence using the word",
  "example_zh": "Traditional Chinese translation of the example",
  "level": "one of: J1 J2 J3 H1 H2 H3 ADV",
  "verb": {"base": "...", "past": "...", "pp": "..."} or null if not a verb,
  "synonyms": ["up to three synonyms"] or []
}`, word)
	if sentence != "" {
		p += fmt.Sprintf("\nThe word appeared in this sentence, use the matching sense: \"%s\"", sentence)
	}
	return p
}

func identifyPrompt(word, sentence string) string {
	p := fmt.Sprintf(`Identify the dictionary base form of the English word "%s".
Respond with a JSON object with exactly these fields:
{
  "baseForm": "the dictionary form",
  "pos": "part of speech abbreviation",
  "inflection": "how the given form relates to the base, e.g. past tense, plural, comparative, or base form",
  "contextualMeaning": "short Traditional Chinese gloss of the meaning in context"
}`, word)
	if sentence != "" {
		p += fmt.Sprintf("\nThe word appeared in this sentence: \"%s\"", sentence)
	}
	return p
}
