// Package template fills {{name}} placeholders in prompt templates.
package template

import "strings"

// Render substitutes bindings into tpl in a single left-to-right pass.
// A token {{name}} is replaced only when bindings[name] is a non-empty
// string; otherwise the literal token text is kept so the caller can
// show it as unfilled. Substituted values are never re-scanned, and
// tokens with no matching binding are preserved verbatim.
func Render(tpl string, bindings map[string]string) string {
	var sb strings.Builder
	sb.Grow(len(tpl))

	rest := tpl
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			sb.WriteString(rest)
			return sb.String()
		}

		name := rest[open+2 : open+2+close]
		token := rest[open : open+2+close+2]

		sb.WriteString(rest[:open])
		if !isIdentifier(name) {
			// Not a token; consume one brace and rescan so an overlapping
			// token still matches ({{{name}}} contains a valid {{name}}).
			sb.WriteString("{")
			rest = rest[open+1:]
			continue
		}
		if v, ok := bindings[name]; ok && v != "" {
			sb.WriteString(v)
		} else {
			sb.WriteString(token)
		}
		rest = rest[open+2+close+2:]
	}
}

// Tokens returns the placeholder names in tpl in order of first
// appearance, without duplicates.
func Tokens(tpl string) []string {
	var names []string
	seen := make(map[string]bool)

	rest := tpl
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			return names
		}
		close := strings.Index(rest[open+2:], "}}")
		if close < 0 {
			return names
		}
		name := rest[open+2 : open+2+close]
		if !isIdentifier(name) {
			rest = rest[open+1:]
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		rest = rest[open+2+close+2:]
	}
}

// isIdentifier reports whether s matches \w+ (the token grammar).
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
