package edgelight

import "strings"

// Matcher reports whether a source identifier belongs to a brand.
type Matcher func(id string) bool

// Contains returns a Matcher that matches when id contains any of the
// given substrings. Matching is case-sensitive.
func Contains(substrs ...string) Matcher {
	return func(id string) bool {
		for _, s := range substrs {
			if strings.Contains(id, s) {
				return true
			}
		}
		return false
	}
}

// BrandRule maps a matcher to a curated color.
type BrandRule struct {
	// Name labels the rule in logs.
	Name  string
	Match Matcher
	Color Color
}

// BrandTable is an ordered list of rules; the first match wins.
type BrandTable []BrandRule

// Lookup returns the color of the first rule matching id.
func (t BrandTable) Lookup(id string) (Color, bool) {
	for _, r := range t {
		if r.Match != nil && r.Match(id) {
			return r.Color, true
		}
	}
	return Color{}, false
}

// brand is a shorthand for rules keyed on their own name.
func brand(name string, argb uint32, extra ...string) BrandRule {
	return BrandRule{
		Name:  name,
		Match: Contains(append([]string{name}, extra...)...),
		Color: ARGB(argb),
	}
}

// DefaultBrands returns the built-in brand table in evaluation order.
// The returned slice is a fresh copy and may be modified by the caller.
func DefaultBrands() BrandTable {
	return BrandTable{
		brand("whatsapp", 0xFF25D366),
		brand("telegram", 0xFF0088CC),
		brand("facebook", 0xFF1877F2),
		brand("instagram", 0xFFE4405F),
		brand("twitter", 0xFF1DA1F2),
		brand("gmail", 0xFFEA4335),
		brand("outlook", 0xFF0078D4),
		brand("youtube", 0xFFFF0000),
		brand("spotify", 0xFF1DB954),
		brand("discord", 0xFF5865F2),
		brand("snapchat", 0xFFFFFC00),
		brand("tiktok", 0xFF000000),
		brand("linkedin", 0xFF0A66C2),
		brand("phone", 0xFF4CAF50, "dialer"),
		brand("sms", 0xFF2196F3, "message"),
		brand("calendar", 0xFFFF9800),
		brand("clock", 0xFF9C27B0, "alarm"),
		brand("camera", 0xFF607D8B),
		brand("gallery", 0xFFE91E63, "photo"),
		brand("music", 0xFF673AB7),
		brand("video", 0xFF795548),
		brand("maps", 0xFF4CAF50),
		brand("uber", 0xFF000000),
		brand("lyft", 0xFFFF00BF),
		brand("netflix", 0xFFE50914),
		brand("amazon", 0xFFFF9900),
		brand("paypal", 0xFF003087),
		brand("venmo", 0xFF3D95CE),
		brand("slack", 0xFF4A154B),
		brand("teams", 0xFF6264A7),
		brand("zoom", 0xFF2D8CFF),
		brand("skype", 0xFF00AFF0),
	}
}

// ListenerBrands returns the reduced table used by the notification
// listener path, which covers only messaging and social sources.
func ListenerBrands() BrandTable {
	return DefaultBrands()[:15]
}
