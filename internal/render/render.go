// Package render substitutes {{name}} placeholders in message templates.
package render

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Render replaces every {{name}} in tmpl with values[name]. Substitution is
// literal and single-pass: a value containing {{x}} is inserted as-is and
// never re-expanded. Placeholders with no matching value pass through
// verbatim so missing test data stays visible to the operator.
func Render(tmpl string, values map[string]string) string {
	if tmpl == "" {
		return tmpl
	}
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-2]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}

// Names returns the placeholder names referenced by tmpl, in order of first
// appearance, without duplicates.
func Names(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
