// Package pathmatch implements find -path style matching, extended with brace alternation.
//
// Patterns follow fnmatch(3) without FNM_PATHNAME:
//   - * matches any characters including /
//   - ? matches exactly one character including /
//   - [...] matches one character from the set including /
//   - \ escapes the next character
//
// In addition, {a,b,c} matches any of the comma-separated alternatives, which may nest
// and contain other wildcards. This lets one pattern cover a family of image extensions,
// such as "*.{png,jpg,jpeg}". Matching can optionally ignore case.
package pathmatch

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Option adjusts how patterns are compiled.
type Option func(*options)

type options struct {
	fold bool
}

// IgnoreCase makes patterns match regardless of letter case.
func IgnoreCase(enabled bool) Option {
	return func(o *options) {
		o.fold = enabled
	}
}

func resolve(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Match reports whether path matches the pattern.
func Match(pattern, path string, opts ...Option) (bool, error) {
	re, err := compile(pattern, resolve(opts))
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher pre-compiles patterns for reuse across many paths.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles the given patterns into a reusable matcher.
func NewMatcher(patterns []string, opts ...Option) (*Matcher, error) {
	o := resolve(opts)
	matcher := &Matcher{patterns: make([]*regexp.Regexp, len(patterns))}

	for idx, p := range patterns {
		re, err := compile(p, o)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}

		matcher.patterns[idx] = re
	}

	return matcher, nil
}

// MatchAny reports whether path matches any of the compiled patterns.
func (m *Matcher) MatchAny(path string) bool {
	for _, re := range m.patterns {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

type cacheKey struct {
	pattern string
	fold    bool
}

var cache sync.Map //nolint:gochecknoglobals // package-level cache is appropriate for compiled regexps

// compile converts a pattern to a compiled regexp, caching the result.
func compile(pattern string, o options) (*regexp.Regexp, error) {
	key := cacheKey{pattern: pattern, fold: o.fold}

	if v, ok := cache.Load(key); ok {
		cached, _ := v.(*regexp.Regexp) //nolint:errcheck // type is guaranteed by cache.Store below

		return cached, nil
	}

	re, err := toRegexp(pattern)
	if err != nil {
		return nil, err
	}

	if o.fold {
		re = "(?i)" + re
	}

	compiled, err := regexp.Compile(re)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	cache.Store(key, compiled)

	return compiled, nil
}

// toRegexp converts a glob pattern to an anchored regex string.
func toRegexp(pattern string) (string, error) {
	var buf strings.Builder

	buf.WriteString("^")

	depth := 0

	pos := 0
	for pos < len(pattern) {
		switch char := pattern[pos]; {
		case char == '*':
			buf.WriteString(".*")

			pos++

		case char == '?':
			buf.WriteString(".")

			pos++

		case char == '[':
			end, err := findClosingBracket(pattern, pos)
			if err != nil {
				return "", err
			}

			class := pattern[pos : end+1]
			// Convert [!...] to [^...] for regex negation
			if len(class) > 2 && class[1] == '!' {
				class = "[^" + class[2:]
			}

			buf.WriteString(class)

			pos = end + 1

		case char == '{':
			buf.WriteString("(?:")

			depth++
			pos++

		case char == ',' && depth > 0:
			buf.WriteString("|")

			pos++

		case char == '}' && depth > 0:
			buf.WriteString(")")

			depth--
			pos++

		case char == '\\':
			if pos+1 >= len(pattern) {
				return "", fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			buf.WriteString(regexp.QuoteMeta(string(pattern[pos+1])))

			pos += 2

		default:
			buf.WriteString(regexp.QuoteMeta(string(char)))

			pos++
		}
	}

	if depth > 0 {
		return "", fmt.Errorf("unclosed brace in pattern %q", pattern)
	}

	buf.WriteString("$")

	return buf.String(), nil
}

// findClosingBracket finds the index of the closing ] for a character class starting at pos.
func findClosingBracket(pattern string, pos int) (int, error) {
	idx := pos + 1

	// Skip leading ! (negation)
	if idx < len(pattern) && pattern[idx] == '!' {
		idx++
	}

	// Skip leading ] (literal)
	if idx < len(pattern) && pattern[idx] == ']' {
		idx++
	}

	for idx < len(pattern) {
		if pattern[idx] == ']' {
			return idx, nil
		}

		idx++
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}
