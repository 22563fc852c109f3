package scene

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayTitle derives a human-readable title from a host node path like
// "bob|rig_a" or "props|cart_heavy".
func DisplayTitle(nodePath string) string {
	if strings.TrimSpace(nodePath) == "" {
		return "Unknown Rig"
	}
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range nodePath {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case r == '|' || r == '_' || r == '-' || r == ':' || unicode.IsSpace(r):
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Rig"
	}
	return cases.Title(language.Und).String(title)
}
