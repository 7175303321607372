package model

// Settings contains read-only application configuration.
type Settings struct {
	DefaultMinutes int
	Haptics        bool
	PulseIndicator bool
	Fullscreen     bool
	LogLevel       string
}

// DefaultSettings returns default settings for Breathe.
func DefaultSettings() Settings {
	return Settings{
		DefaultMinutes: 5,
		Haptics:        true,
		PulseIndicator: true,
		Fullscreen:     false,
		LogLevel:       "info",
	}
}
