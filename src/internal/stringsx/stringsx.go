package stringsx

import "strings"

// Tokens splits s on delim and trims surrounding whitespace from every part.
// An empty delim yields s as the only token. Empty parts are kept.
func Tokens(s, delim string) []string {
	if delim == "" {
		return []string{strings.TrimSpace(s)}
	}
	parts := strings.Split(s, delim)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
