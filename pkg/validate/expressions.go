package validate

import (
	"regexp"
	"strings"
)

// Inline expressions ({{ ... }}) are restricted to a small allow-list of
// shapes. Anything else that looks like an expression is reported rather
// than guessed at; intent is ambiguous and there is no safe auto-repair.
var (
	inlineExpression = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

	allowedExpressions = []*regexp.Regexp{
		regexp.MustCompile(`^\$json\.[A-Za-z_][A-Za-z0-9_]*$`),
		regexp.MustCompile(`^\$json\["[^"]+"\]$`),
		regexp.MustCompile(`^\$node\["[^"]+"\]\.json\["[^"]+"\]$`),
		regexp.MustCompile(`^\$input\.(all|first)\(\)$`),
	}
)

// invalidExpressions returns every {{ }} expression in the value that does
// not match an allowed shape.
func invalidExpressions(value string) []string {
	if !strings.Contains(value, "{{") && !strings.Contains(value, "}}") {
		return nil
	}

	var invalid []string

	for _, match := range inlineExpression.FindAllStringSubmatch(value, -1) {
		expr := strings.TrimSpace(match[1])

		if !expressionAllowed(expr) {
			invalid = append(invalid, match[0])
		}
	}

	// Braces without a parseable expression inside still count as one.
	if len(invalid) == 0 && len(inlineExpression.FindAllString(value, -1)) == 0 {
		invalid = append(invalid, value)
	}

	return invalid
}

func expressionAllowed(expr string) bool {
	for _, pattern := range allowedExpressions {
		if pattern.MatchString(expr) {
			return true
		}
	}

	return false
}

// stringValues walks a parameter value and yields every string found in
// nested maps and slices, paired with its dotted path.
func stringValues(prefix string, value any, visit func(path, str string)) {
	switch typed := value.(type) {
	case string:
		visit(prefix, typed)
	case map[string]any:
		for key, nested := range typed {
			stringValues(prefix+"."+key, nested, visit)
		}
	case []any:
		for _, nested := range typed {
			stringValues(prefix, nested, visit)
		}
	}
}
