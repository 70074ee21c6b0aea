package template

import (
	"fmt"
	"strings"
)

// Key identifies one of the fixed placeholders of a prompt template.
// The set is closed: values outside [AppType, KeyFeatures] are invalid.
type Key int

// Placeholder keys in canonical (form) order.
const (
	AppType Key = iota
	MarketIndustry
	TargetAudience
	VibeStyle
	AestheticPriority
	Colors
	AccentColors
	UXEmotion
	KeyFeatures

	keyCount
)

// keyNames maps each key to the name used inside template tokens.
var keyNames = [keyCount]string{
	AppType:           "APP_TYPE",
	MarketIndustry:    "MARKET_INDUSTRY",
	TargetAudience:    "TARGET_AUDIENCE",
	VibeStyle:         "VIBE_STYLE",
	AestheticPriority: "AESTHETIC_PRIORITY",
	Colors:            "COLORS",
	AccentColors:      "ACCENT_COLORS",
	UXEmotion:         "UX_EMOTION",
	KeyFeatures:       "KEY_FEATURES",
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Key(0)

// Keys returns every placeholder key in canonical order.
// The returned slice is a fresh copy.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// ParseKey resolves a placeholder name to its Key.
// Matching ignores case and treats '-' like '_', so "APP_TYPE",
// "app_type" and "app-type" all resolve to AppType.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return 0, fmt.Errorf("placeholder name cannot be empty: %w", ErrUnknownKey)
	}
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, name := range keyNames {
		if name == norm {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("unknown placeholder %q (valid: %s): %w", s, strings.Join(keyNames[:], ", "), ErrUnknownKey)
}

// parseTokenName resolves an exact token name such as "APP_TYPE".
// Unlike ParseKey it is case-sensitive: "[app_type]" is plain text.
func parseTokenName(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// Valid reports whether k belongs to the fixed key set.
func (k Key) Valid() bool {
	return k >= 0 && k < keyCount
}

// String returns the token name, e.g. "APP_TYPE".
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Token returns the bracketed placeholder, e.g. "[APP_TYPE]".
func (k Key) Token() string {
	return "[" + k.String() + "]"
}

// Flag returns the command-line flag name, e.g. "app-type".
func (k Key) Flag() string {
	return strings.ToLower(strings.ReplaceAll(k.String(), "_", "-"))
}

// Label returns the form label: the first underscore becomes a space.
func (k Key) Label() string {
	return strings.Replace(k.String(), "_", " ", 1)
}
