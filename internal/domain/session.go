// Package domain contains core domain types for the Zanger application.
package domain

// Session represents an authenticated user for the lifetime of a browser tab.
// At most one session is active at a time.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Language is a UI language selection.
type Language string

// Supported languages.
const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
)

// Valid reports whether the language is one of the supported values.
func (l Language) Valid() bool {
	return l == LanguageRU || l == LanguageEN
}

// Theme is a UI theme selection. The render layer applies the visual
// variant; the core only stores the value.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeTTC   Theme = "ttc"
)

// Valid reports whether the theme is one of the supported values.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeTTC
}

// Preferences holds the persisted user preferences.
type Preferences struct {
	Language Language `json:"language"`
	Theme    Theme    `json:"theme"`
}

// DefaultPreferences returns the preferences applied when nothing is persisted.
func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageRU, Theme: ThemeLight}
}
