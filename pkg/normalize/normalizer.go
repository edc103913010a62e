// Package normalize cleans, sanitizes, and scores free-text workflow
// descriptions. It is total: every input, including nil and non-string
// values, yields a usable description string.
package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultDescription substitutes empty or unusable input.
	DefaultDescription = "automated data processing workflow"

	maxLength       = 5000
	minLength       = 3
	confidenceFloor = 0.15
)

// Info records what normalization did to the input and how trustworthy the
// result is.
type Info struct {
	Original     string   `json:"original"`
	Applied      []string `json:"applied"`
	Language     string   `json:"language"`
	LanguageConf float64  `json:"language_confidence"`
	Confidence   float64  `json:"confidence"`
	Rejected     bool     `json:"rejected"`
	RejectReason string   `json:"reject_reason,omitempty"`
}

// Normalizer runs the fixed normalization steps in order. It holds no
// per-request state and is safe for concurrent use.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	exclamationRun = regexp.MustCompile(`!{4,}`)
	questionRun    = regexp.MustCompile(`\?{4,}`)
	periodRun      = regexp.MustCompile(`\.{4,}`)

	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	scriptOpen    = regexp.MustCompile(`(?i)<script[^>]*>`)
	jsScheme      = regexp.MustCompile(`(?i)javascript\s*:`)
	sqlStatement  = regexp.MustCompile(`(?i)\b(drop|truncate|delete|insert|update|alter)\s+(table|database|from|into)\b[^;]*`)
	shellDeletion = regexp.MustCompile(`(?i)\brm\s+-[a-z]+\s+\S*`)
	pathTraversal = regexp.MustCompile(`\.\./`)
	serverInclude = regexp.MustCompile(`<!--#.*?-->`)

	chainedShell = regexp.MustCompile(`(?i)rm\s+-[a-z]*f[a-z]*\s+\S+\s*(&&|;|\|)\s*rm\s+`)
	chainedSQL   = regexp.MustCompile(`(?i)(drop|truncate|delete)\b[^;]*;\s*(drop|truncate|delete)\b`)
)

// Normalize runs the pipeline and never returns an error. The returned text
// is always non-empty; Info.Rejected marks the narrow class of inputs the
// caller should refuse outright.
func (n *Normalizer) Normalize(raw any) (string, *Info) {
	info := &Info{Language: "en", LanguageConf: 0.5, Applied: []string{}}

	// Step 1: coerce to string.
	text := coerce(raw, info)
	info.Original = text

	if reason := severeInput(text); reason != "" {
		info.Rejected = true
		info.RejectReason = reason
	}

	// Step 2: unicode compatibility composition and control stripping.
	text = stripControl(norm.NFKC.String(text))

	// Step 3: collapse whitespace and punctuation runs.
	collapsed := exclamationRun.ReplaceAllString(text, "!!!")
	collapsed = questionRun.ReplaceAllString(collapsed, "???")
	collapsed = periodRun.ReplaceAllString(collapsed, "...")
	collapsed = strings.TrimSpace(whitespaceRun.ReplaceAllString(collapsed, " "))
	if collapsed != strings.TrimSpace(text) {
		info.Applied = append(info.Applied, "collapse")
	}

	text = collapsed

	// Step 4: substitute or expand too-short input.
	switch {
	case text == "":
		text = DefaultDescription
		info.Applied = append(info.Applied, "default")
	case len(text) < minLength:
		text = fmt.Sprintf("automated %s processing workflow", text)
		info.Applied = append(info.Applied, "expand")
	}

	// Step 5: strip dangerous substrings, then escape. Lossy on purpose;
	// this is hygiene, not a security boundary.
	text = sanitize(text, info)

	// Step 6: language detection.
	info.Language, info.LanguageConf = detectLanguage(text)

	// Step 7: rewrite generic or industry-flavored descriptions.
	text = rewrite(text, info)

	// Step 8: truncate overly long input at a natural boundary.
	if len(text) > maxLength {
		text = truncate(text, maxLength)
		info.Applied = append(info.Applied, "truncate")
	}

	// Step 9: confidence score.
	info.Confidence = score(text, info)

	return text, info
}

func coerce(raw any, info *Info) string {
	switch value := raw.(type) {
	case nil:
		info.Applied = append(info.Applied, "default")
		return DefaultDescription
	case string:
		return value
	case fmt.Stringer:
		info.Applied = append(info.Applied, "coerce")
		return value.String()
	default:
		info.Applied = append(info.Applied, "coerce")
		return fmt.Sprintf("%v", value)
	}
}

func stripControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}

		if unicode.IsControl(r) {
			return -1
		}

		return r
	}, text)
}

// severeInput matches the small denylist of inputs that are refused rather
// than repaired: script-tag floods, chained destructive SQL, and chained
// destructive shell commands.
func severeInput(text string) string {
	if len(scriptOpen.FindAllStringIndex(text, -1)) > 3 {
		return "repeated script injection attempts"
	}

	if chainedSQL.MatchString(text) {
		return "chained destructive SQL statements"
	}

	if chainedShell.MatchString(text) {
		return "chained destructive shell commands"
	}

	return ""
}

func sanitize(text string, info *Info) string {
	cleaned := text
	for _, pattern := range []*regexp.Regexp{
		scriptTag, scriptOpen, jsScheme, sqlStatement,
		shellDeletion, pathTraversal, serverInclude,
	} {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	if cleaned != text {
		info.Applied = append(info.Applied, "sanitize")
	}

	cleaned = strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		info.Applied = append(info.Applied, "default")
		return DefaultDescription
	}

	return html.EscapeString(cleaned)
}

// truncate cuts the text at a sentence boundary if one exists in the back
// half, else a word boundary, else hard with an ellipsis.
func truncate(text string, limit int) string {
	// Never split a multi-byte rune at the cut point.
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}

	cut := text[:limit]

	if idx := strings.LastIndex(cut, ". "); idx > limit/2 {
		return cut[:idx+1]
	}

	if idx := strings.LastIndex(cut, " "); idx > limit/2 {
		return cut[:idx] + "..."
	}

	return cut + "..."
}
