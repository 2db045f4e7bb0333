package entity

// Speech rate bounds mirrored from the narration layer's usable range.
const (
	MinSpeechRate     = 0.5
	MaxSpeechRate     = 2.0
	DefaultSpeechRate = 1.0
)

// Settings is the small typed bag of user-adjustable playback options.
type Settings struct {
	SpeechRate float64 `json:"speech_rate"`
	AutoPlay   bool    `json:"auto_play"`
}

// DefaultSettings returns the startup settings.
func DefaultSettings() Settings {
	return Settings{SpeechRate: DefaultSpeechRate}
}

// ClampRate forces a rate into the supported range, substituting the
// default for non-positive values.
func ClampRate(rate float64) float64 {
	if rate <= 0 {
		return DefaultSpeechRate
	}
	if rate < MinSpeechRate {
		return MinSpeechRate
	}
	if rate > MaxSpeechRate {
		return MaxSpeechRate
	}
	return rate
}
