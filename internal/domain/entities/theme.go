package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BackgroundStyle controls how a theme paints slide backgrounds
type BackgroundStyle string

const (
	// BackgroundSolid fills the whole slide with the background color
	BackgroundSolid BackgroundStyle = "solid"
	// BackgroundBanded fills the slide and adds an accent band under the title
	BackgroundBanded BackgroundStyle = "banded"
	// BackgroundPlain leaves the slide background untouched
	BackgroundPlain BackgroundStyle = "plain"
)

// DefaultThemeName is the preset used when no theme is configured
const DefaultThemeName = "default"

// Theme is the visual styling applied uniformly to every slide of a deck
type Theme struct {
	// Name is the theme identifier
	Name string `toml:"name" json:"name" yaml:"name"`

	// DisplayName is the human-readable theme name
	DisplayName string `toml:"display_name" json:"display_name" yaml:"display_name"`

	Description string `toml:"description" json:"description,omitempty" yaml:"description,omitempty"`

	FontFamily      string          `toml:"font_family" json:"font_family" yaml:"font_family"`
	TitleColor      string          `toml:"title_color" json:"title_color" yaml:"title_color"`
	BodyColor       string          `toml:"body_color" json:"body_color" yaml:"body_color"`
	AccentColor     string          `toml:"accent_color" json:"accent_color" yaml:"accent_color"`
	BackgroundStyle BackgroundStyle `toml:"background_style" json:"background_style" yaml:"background_style"`
	BackgroundColor string          `toml:"background_color" json:"background_color" yaml:"background_color"`

	// TitleSize and BodySize are font sizes in points
	TitleSize int `toml:"title_size" json:"title_size" yaml:"title_size"`
	BodySize  int `toml:"body_size" json:"body_size" yaml:"body_size"`

	// MaxBullets caps the body lines shown on a title+content slide
	MaxBullets int `toml:"max_bullets" json:"max_bullets" yaml:"max_bullets"`
}

// Validate ensures the theme has valid required fields
func (t *Theme) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}

	if !isValidThemeName(t.Name) {
		return errors.New("theme name must contain only lowercase letters, numbers, and hyphens")
	}

	if strings.TrimSpace(t.FontFamily) == "" {
		return errors.New("font family is required")
	}

	colors := map[string]string{
		"title color":      t.TitleColor,
		"body color":       t.BodyColor,
		"accent color":     t.AccentColor,
		"background color": t.BackgroundColor,
	}
	for _, field := range []string{"title color", "body color", "accent color", "background color"} {
		if !IsHexColor(colors[field]) {
			return fmt.Errorf("%s must be a 6-digit hex color: %q", field, colors[field])
		}
	}

	switch t.BackgroundStyle {
	case BackgroundSolid, BackgroundBanded, BackgroundPlain:
	default:
		return fmt.Errorf("invalid background style: %s (must be solid, banded, or plain)", t.BackgroundStyle)
	}

	if t.TitleSize <= 0 || t.BodySize <= 0 {
		return errors.New("font sizes must be positive")
	}

	if t.MaxBullets < 2 {
		return errors.New("max bullets must be at least 2")
	}

	return nil
}

// GetDisplayName returns the display name, falling back to the identifier
func (t *Theme) GetDisplayName() string {
	if t.DisplayName == "" {
		return t.Name
	}
	return t.DisplayName
}

// IsBuiltIn returns true if this is a built-in theme
func (t *Theme) IsBuiltIn() bool {
	_, ok := builtInThemes[t.Name]
	return ok
}

// ARGB returns a color in the AARRGGBB form used by presentation writers
func ARGB(hex string) string {
	return "FF" + strings.ToUpper(strings.TrimPrefix(hex, "#"))
}

// IsHexColor checks for a 6-digit RGB hex value with an optional leading '#'
func IsHexColor(value string) bool {
	value = strings.TrimPrefix(value, "#")
	if len(value) != 6 {
		return false
	}
	for _, char := range value {
		isDigit := char >= '0' && char <= '9'
		isHexLetter := (char >= 'a' && char <= 'f') || (char >= 'A' && char <= 'F')
		if !isDigit && !isHexLetter {
			return false
		}
	}
	return true
}

var builtInThemes = map[string]Theme{
	DefaultThemeName: {
		Name:            DefaultThemeName,
		DisplayName:     "Default",
		Description:     "Neutral blue on white",
		FontFamily:      "Calibri",
		TitleColor:      "1F3864",
		BodyColor:       "333333",
		AccentColor:     "2F5597",
		BackgroundStyle: BackgroundSolid,
		BackgroundColor: "FFFFFF",
		TitleSize:       32,
		BodySize:        16,
		MaxBullets:      5,
	},
	"business": {
		Name:            "business",
		DisplayName:     "Business",
		Description:     "Warm blue with green and gold accents",
		FontFamily:      "Calibri",
		TitleColor:      "2F5597",
		BodyColor:       "2F2F2F",
		AccentColor:     "70AD47",
		BackgroundStyle: BackgroundBanded,
		BackgroundColor: "FFFFFF",
		TitleSize:       32,
		BodySize:        15,
		MaxBullets:      5,
	},
	"technical": {
		Name:            "technical",
		DisplayName:     "Technical",
		Description:     "Dark gray with bright blue accents",
		FontFamily:      "Calibri",
		TitleColor:      "2F2F2F",
		BodyColor:       "2F2F2F",
		AccentColor:     "0096C7",
		BackgroundStyle: BackgroundBanded,
		BackgroundColor: "FFFFFF",
		TitleSize:       32,
		BodySize:        14,
		MaxBullets:      5,
	},
	"executive": {
		Name:            "executive",
		DisplayName:     "Executive",
		Description:     "Deep blue with burgundy accents and larger type",
		FontFamily:      "Calibri",
		TitleColor:      "1F497D",
		BodyColor:       "000000",
		AccentColor:     "C0504D",
		BackgroundStyle: BackgroundSolid,
		BackgroundColor: "FFFFFF",
		TitleSize:       36,
		BodySize:        16,
		MaxBullets:      4,
	},
}

// BuiltInTheme returns a copy of a named preset
func BuiltInTheme(name string) (Theme, bool) {
	theme, ok := builtInThemes[name]
	return theme, ok
}

// BuiltInThemeNames returns the preset names in sorted order
func BuiltInThemeNames() []string {
	names := make([]string, 0, len(builtInThemes))
	for name := range builtInThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTheme returns the "default" preset
func DefaultTheme() Theme {
	return builtInThemes[DefaultThemeName]
}

// isValidThemeName checks if a theme name is valid
func isValidThemeName(name string) bool {
	if name == "" {
		return false
	}

	for _, char := range name {
		isLowercase := char >= 'a' && char <= 'z'
		isDigit := char >= '0' && char <= '9'
		isHyphen := char == '-'

		if !isLowercase && !isDigit && !isHyphen {
			return false
		}
	}

	// Cannot start or end with hyphen
	return !strings.HasPrefix(name, "-") && !strings.HasSuffix(name, "-")
}
