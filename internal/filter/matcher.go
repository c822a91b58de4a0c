// Package filter decides which traversal entries reach the tree: it compiles
// glob patterns, computes the inclusion kept-set and applies exclusions.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"

	"github.com/temirov/pathtree/internal/types"
)

// ErrInvalidPattern is returned when a pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// ErrUnsupportedSyntax is returned for an unknown pattern syntax name.
var ErrUnsupportedSyntax = errors.New("unsupported pattern syntax")

const (
	errorInvalidPatternFormat    = "%w %q: %v"
	errorUnsupportedSyntaxFormat = "%w %q (expected %s or %s)"
)

// Matcher reports whether a full path matches a compiled pattern.
type Matcher interface {
	Match(path string) bool
	Pattern() string
}

// Compile builds a Matcher for pattern using the named syntax. An empty
// syntax selects types.SyntaxGlob. Only the empty pattern yields a nil
// Matcher, which callers treat as "no pattern supplied"; whitespace is a
// literal pattern like any other.
func Compile(pattern string, syntax string) (Matcher, error) {
	if pattern == "" {
		return nil, nil
	}
	switch strings.ToLower(syntax) {
	case "", types.SyntaxGlob:
		compiled, compileError := glob.Compile(pattern)
		if compileError != nil {
			return nil, fmt.Errorf(errorInvalidPatternFormat, ErrInvalidPattern, pattern, compileError)
		}
		return globMatcher{pattern: pattern, compiled: compiled}, nil
	case types.SyntaxPath:
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf(errorInvalidPatternFormat, ErrInvalidPattern, pattern, doublestar.ErrBadPattern)
		}
		return pathMatcher{pattern: pattern}, nil
	default:
		return nil, fmt.Errorf(errorUnsupportedSyntaxFormat, ErrUnsupportedSyntax, syntax, types.SyntaxGlob, types.SyntaxPath)
	}
}

// globMatcher compiles without separators, so '*' spans directory boundaries.
type globMatcher struct {
	pattern  string
	compiled glob.Glob
}

func (matcher globMatcher) Match(path string) bool {
	return matcher.compiled.Match(path)
}

func (matcher globMatcher) Pattern() string {
	return matcher.pattern
}

type pathMatcher struct {
	pattern string
}

func (matcher pathMatcher) Match(path string) bool {
	matched, matchError := doublestar.Match(matcher.pattern, path)
	return matchError == nil && matched
}

func (matcher pathMatcher) Pattern() string {
	return matcher.pattern
}
