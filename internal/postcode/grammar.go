package postcode

import (
	"regexp"
	"strings"
)

// canonicalLength is the width of every normalized postcode.
const canonicalLength = 7

// Position rules:
//   - first letter of the outward code: not Q, V, X
//   - second letter of a two-letter area: not I, J, Z
//   - trailing letter after a one-letter area: A-H, J, K, P, S, T, U, W
//   - trailing letter after a two-letter area: A, B, E, H, M, N, P, R, V, W, X, Y
//   - inward letters: not C, I, K, M, O, V
const (
	area1    = `[A-PR-UWYZ]`
	area2    = `[A-HK-Y]`
	suffix1  = `[A-HJKPSTUW]`
	suffix2  = `[ABEHMNPRVWXY]`
	inwardRE = `[0-9][ABD-HJLNP-UW-Z]{2}`

	outwardRE = area1 + `[0-9][0-9]?` +
		`|` + area1 + area2 + `[0-9][0-9]?` +
		`|` + area1 + `[0-9]` + suffix1 +
		`|` + area1 + area2 + `[0-9]` + suffix2
)

// grammar matches a whole uppercased postcode. Submatches:
// 1 special outward, 2 special inward, 3 outward, 4 separator, 5 inward.
var grammar = regexp.MustCompile(`^(?:(GIR) (0AA)|(` + outwardRE + `)( {0,2})(` + inwardRE + `))$`)

// match runs the grammar over s, which must already be uppercased.
// It returns the matched outward and inward codes.
func match(s string) (outward, inward string, ok bool) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	if m[1] != "" {
		return m[1], m[2], true
	}

	// Two separator spaces are only the canonical padding of a
	// two-character outward code.
	if len(m[4]) == 2 && len(s) != canonicalLength {
		return "", "", false
	}
	return m[3], m[5], true
}

// normalize validates raw and returns its canonical form.
func normalize(raw string) (string, bool) {
	upper := toUpperASCII(raw)

	outward, inward, ok := match(upper)
	if !ok {
		return "", false
	}
	if len(upper) == canonicalLength {
		return upper, true
	}

	pad := canonicalLength - len(outward) - len(inward)
	return outward + strings.Repeat(" ", pad) + inward, true
}

// toUpperASCII uppercases a-z only. strings.ToUpper would fold some
// non-ASCII runes (e.g. U+017F) onto ASCII letters the grammar accepts.
func toUpperASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, s)
}
