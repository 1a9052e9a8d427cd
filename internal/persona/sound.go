package persona

import (
	"strings"
	"unicode"
)

const vowels = "aeiou"

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

// DeriveSound turns a name into the short cry a creature uses in chat:
// the prefix up to the second vowel (at most 6 runes), or the first vowel
// plus one rune (at most 5) when there is only one vowel, or the first 4
// runes when there are none. Names shorter than 2 runes or without any
// letter are returned unchanged.
func DeriveSound(name string) string {
	runes := []rune(name)
	if len(runes) < 2 || !strings.ContainsFunc(name, unicode.IsLetter) {
		return name
	}

	first, second := -1, -1
	for i, r := range runes {
		if !isVowel(r) {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		second = i
		break
	}

	switch {
	case first < 0:
		return string(runes[:min(4, len(runes))])
	case second > 0:
		return string(runes[:min(second+1, 6)])
	default:
		return string(runes[:min(first+2, 5, len(runes))])
	}
}
