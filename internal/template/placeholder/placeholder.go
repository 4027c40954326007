// Package placeholder implements the "$" delimiter placeholder syntax used by
// mod templates: "${name}" (braced), "$name" (named) and "$$" (escaped dollar).
//
// Identifiers are ASCII letters, digits and underscores, not starting with a
// digit, and match case-insensitively against the syntax (names themselves
// are looked up verbatim).
package placeholder

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a placeholder occurrence.
type Kind int

const (
	// Escaped is "$$", rendered as a single "$".
	Escaped Kind = iota
	// Named is "$name".
	Named
	// Braced is "${name}".
	Braced
	// Invalid is a "$" that does not start any of the forms above.
	Invalid
)

// Match is one placeholder occurrence in a text.
type Match struct {
	Kind Kind
	// Name is the identifier for Named and Braced matches.
	Name string
	// Start and End are byte offsets of the whole occurrence.
	Start int
	End   int
}

// Values is a substitution mapping from placeholder names to values.
type Values map[string]string

// Keys returns the mapping keys in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Scan returns every placeholder occurrence in text, left to right.
func Scan(text string) []Match {
	var matches []Match
	i := 0
	for i < len(text) {
		j := strings.IndexByte(text[i:], '$')
		if j < 0 {
			break
		}
		pos := i + j
		rest := text[pos+1:]

		m := Match{Start: pos}
		switch {
		case strings.HasPrefix(rest, "$"):
			m.Kind = Escaped
			m.End = pos + 2
		case identLen(rest) > 0:
			n := identLen(rest)
			m.Kind = Named
			m.Name = rest[:n]
			m.End = pos + 1 + n
		case isBraced(rest):
			n := identLen(rest[1:])
			m.Kind = Braced
			m.Name = rest[1 : 1+n]
			m.End = pos + 3 + n
		default:
			m.Kind = Invalid
			m.End = pos + 1
		}
		matches = append(matches, m)
		i = m.End
	}
	return matches
}

// RequiredKeys returns the sorted, de-duplicated names of all braced
// placeholders in text. Unbraced "$name" forms are not required: template
// sources routinely contain "$" for other purposes (C# interpolated strings,
// shell variables) and those must survive rendering untouched.
func RequiredKeys(text string) []string {
	seen := make(map[string]struct{})
	for _, m := range Scan(text) {
		if m.Kind == Braced {
			seen[m.Name] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing returns the sorted required keys of text that are absent from values.
// An empty result means SafeSubstitute will resolve every braced placeholder.
func Missing(text string, values Values) []string {
	var missing []string
	for _, key := range RequiredKeys(text) {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// SafeSubstitute replaces every placeholder whose name is present in values
// and turns "$$" into "$". Unknown names and malformed placeholders are
// passed through unchanged; it never fails.
func SafeSubstitute(text string, values Values) string {
	matches := Scan(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		switch m.Kind {
		case Escaped:
			b.WriteByte('$')
		case Named, Braced:
			if v, ok := values[m.Name]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(text[m.Start:m.End])
			}
		default:
			b.WriteString(text[m.Start:m.End])
		}
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// Substitute replaces every placeholder in text. Any named or braced key
// absent from values, or any malformed placeholder, is an error.
func Substitute(text string, values Values) (string, error) {
	for _, m := range Scan(text) {
		switch m.Kind {
		case Named, Braced:
			if _, ok := values[m.Name]; !ok {
				return "", &KeyError{Key: m.Name, Text: text}
			}
		case Invalid:
			line, col := position(text, m.Start)
			return "", fmt.Errorf("invalid placeholder in string: line %d, col %d", line, col)
		}
	}
	return SafeSubstitute(text, values), nil
}

// KeyError reports a placeholder with no value during strict substitution.
type KeyError struct {
	Key  string
	Text string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("no value for placeholder %q in %q", e.Key, e.Text)
}

func identLen(s string) int {
	if s == "" || !isIdentStart(s[0]) {
		return 0
	}
	n := 1
	for n < len(s) && isIdentPart(s[n]) {
		n++
	}
	return n
}

func isBraced(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}
	n := identLen(s[1:])
	return n > 0 && len(s) > 1+n && s[1+n] == '}'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// position converts a byte offset into a 1-based line and column.
func position(text string, offset int) (int, int) {
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset + 1
	if idx := strings.LastIndexByte(before, '\n'); idx >= 0 {
		col = offset - idx
	}
	return line, col
}
