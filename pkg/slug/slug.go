package slug

import (
	"regexp"
	"strings"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// folder transliterates the accented characters that show up in event and
// gallery titles. Maltese letters are folded explicitly since that is where
// most of the club's content originates.
var folder = strings.NewReplacer(
	"ċ", "c", "ġ", "g", "ħ", "h", "ż", "z",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u",
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"â", "a", "ê", "e", "î", "i", "ô", "o", "û", "u",
	"ä", "a", "ë", "e", "ï", "i", "ö", "o", "ü", "u",
)

// Generate creates a URL-friendly slug from the given title.
//
// Examples:
//   - "Għana Night 2026" → "ghana-night-2026"
//   - "Fête   d'été!" → "fete-d-ete"
func Generate(title string) string {
	s := folder.Replace(strings.ToLower(strings.TrimSpace(title)))

	s = slugRegexp.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
