package keys

import "strings"

// CharacterKeyFromName produces a canonical roster key from a display
// name: trimmed, lower-cased, spaces replaced with underscores. Suitable
// for stable DB keys.
func CharacterKeyFromName(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
