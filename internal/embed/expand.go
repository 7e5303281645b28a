package embed

import (
	"strings"

	"github.com/cruciblehq/chariotd/internal/crex"
)

// Scope is a layer of name-to-value bindings consulted during expansion.
type Scope map[string]string

// Expand splices every `@(name)`/`@(name?)` reference in s, consulting
// scopes in order (earliest first) for each name. An unresolved required
// reference returns ErrUnknownVariable; an unresolved optional reference
// splices to the empty string.
func Expand(s string, scopes ...Scope) (string, error) {
	var out strings.Builder
	out.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] != '@' {
			out.WriteByte(s[i])
			i++
			continue
		}

		if i+1 >= len(s) || s[i+1] != '(' {
			out.WriteByte(s[i])
			i++
			continue
		}

		end := strings.IndexByte(s[i:], ')')
		if end < 0 {
			// Unterminated reference: copy the rest verbatim, matching the
			// original scanner's behavior of leaving an unclosed `@(` alone.
			out.WriteString(s[i:])
			break
		}
		end += i // index of ')' in s

		body := s[i+2 : end]
		if body == "" {
			// `@()`: left untouched.
			out.WriteString(s[i : end+1])
			i = end + 1
			continue
		}

		optional := strings.HasSuffix(body, "?")
		name := body
		if optional {
			name = body[:len(body)-1]
		}

		value, ok := lookup(name, scopes)
		if !ok {
			if optional {
				i = end + 1
				continue
			}
			return "", crex.Wrapf(ErrUnknownVariable, "`%s`", name)
		}

		out.WriteString(value)
		i = end + 1
	}

	return out.String(), nil
}

func lookup(name string, scopes []Scope) (string, bool) {
	for _, scope := range scopes {
		for key, value := range scope {
			if equalFold(key, name) {
				return value, true
			}
		}
	}
	return "", false
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
