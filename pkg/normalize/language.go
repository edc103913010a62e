package normalize

import (
	"strings"
	"unicode"
)

// latinMarkers holds small keyword lists for a few Latin-script languages,
// checked in order. Two hits are required before overriding the English
// default.
var latinMarkers = []struct {
	lang    string
	markers []string
}{
	{"es", []string{" el ", " la ", " de ", " que ", " para ", " cuando ", " enviar "}},
	{"fr", []string{" le ", " les ", " des ", " pour ", " quand ", " envoyer ", " avec "}},
	{"de", []string{" der ", " die ", " das ", " und ", " wenn ", " senden ", " mit "}},
	{"pt", []string{" o ", " os ", " uma ", " quando ", " enviar ", " para ", " com "}},
}

// detectLanguage tags the text with a best-guess language. Non-Latin
// scripts are decided by Unicode range; Latin-script languages by marker
// words. The default is English with middling confidence.
func detectLanguage(text string) (string, float64) {
	var han, kana, hangul, cyrillic, arabic, total int

	for _, r := range text {
		if unicode.IsLetter(r) {
			total++
		}

		switch {
		case unicode.In(r, unicode.Han):
			han++
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			kana++
		case unicode.In(r, unicode.Hangul):
			hangul++
		case unicode.In(r, unicode.Cyrillic):
			cyrillic++
		case unicode.In(r, unicode.Arabic):
			arabic++
		}
	}

	if total == 0 {
		return "en", 0.3
	}

	threshold := total / 4

	switch {
	case kana > 0:
		return "ja", ratio(han+kana, total)
	case han > threshold:
		return "zh", ratio(han, total)
	case hangul > threshold:
		return "ko", ratio(hangul, total)
	case cyrillic > threshold:
		return "ru", ratio(cyrillic, total)
	case arabic > threshold:
		return "ar", ratio(arabic, total)
	}

	padded := " " + strings.ToLower(text) + " "
	for _, candidate := range latinMarkers {
		hits := 0

		for _, marker := range candidate.markers {
			if strings.Contains(padded, marker) {
				hits++
			}
		}

		if hits >= 2 {
			return candidate.lang, 0.6
		}
	}

	return "en", 0.5
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}

	r := float64(part) / float64(total)
	if r > 0.95 {
		return 0.95
	}

	return r
}
