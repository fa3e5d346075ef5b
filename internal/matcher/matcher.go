// Package matcher matches provider and model names against search terms
// given on the command line or in API queries.
//
// A term is matched in one of three ways:
//   - /expr/ is a regular expression,
//   - a term containing *, ? or [ is a shell glob over the whole input,
//   - anything else is a substring.
//
// Matching ignores case in every mode.
package matcher

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentstation/providerhub/pkg/errors"
)

// PatternType is the matching mode of a term.
type PatternType int

// Pattern types.
const (
	Substring PatternType = iota
	Glob
	Regex
)

// String returns the name of the pattern type.
func (pt PatternType) String() string {
	switch pt {
	case Substring:
		return "substring"
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	}
	return "unknown"
}

// Matcher matches inputs against one search term.
type Matcher struct {
	pattern     string
	patternType PatternType
	term        string
	compiled    *regexp.Regexp
}

// New compiles term. An empty term matches everything.
func New(term string) (*Matcher, error) {
	m := &Matcher{pattern: term, patternType: Detect(term)}

	switch m.patternType {
	case Regex:
		expr := term[1 : len(term)-1]
		compiled, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, errors.NewValidationError("search", term, "invalid regular expression: "+err.Error())
		}
		m.compiled = compiled
	case Glob:
		m.term = strings.ToLower(term)
		if _, err := filepath.Match(m.term, ""); err != nil {
			return nil, errors.NewValidationError("search", term, "invalid glob pattern")
		}
	default:
		m.term = strings.ToLower(term)
	}
	return m, nil
}

// Detect returns the pattern type New would pick for term.
func Detect(term string) PatternType {
	switch {
	case len(term) >= 2 && strings.HasPrefix(term, "/") && strings.HasSuffix(term, "/"):
		return Regex
	case strings.ContainsAny(term, "*?["):
		return Glob
	}
	return Substring
}

// Match reports whether input matches the term.
func (m *Matcher) Match(input string) bool {
	switch m.patternType {
	case Regex:
		return m.compiled.MatchString(input)
	case Glob:
		ok, _ := filepath.Match(m.term, strings.ToLower(input))
		return ok
	}
	return strings.Contains(strings.ToLower(input), m.term)
}

// MatchAny reports whether any of inputs matches.
func (m *Matcher) MatchAny(inputs ...string) bool {
	for _, input := range inputs {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// Pattern returns the term as given.
func (m *Matcher) Pattern() string { return m.pattern }

// Type returns the detected pattern type.
func (m *Matcher) Type() PatternType { return m.patternType }
