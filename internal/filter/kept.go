package filter

import (
	"strings"

	"github.com/temirov/pathtree/internal/types"
)

// KeptSet holds the full paths that survive inclusion filtering: every path
// the inclusion pattern matches, plus every path contained as a substring in
// one of those matches. The substring test stands in for "is an ancestor of"
// and is looser than a path-prefix test: "a/b" is kept for a match on
// "x/a/bc.txt". The zero value is inactive and allows every path.
type KeptSet struct {
	active  bool
	matches []string
	kept    map[string]struct{}
}

// NewKeptSet computes the kept-set for entries. A nil matcher produces an
// inactive set, which is distinct from an active set that kept nothing.
func NewKeptSet(entries []types.Entry, matcher Matcher) KeptSet {
	if matcher == nil {
		return KeptSet{}
	}

	keptSet := KeptSet{active: true, kept: make(map[string]struct{})}
	for _, entry := range entries {
		if matcher.Match(entry.FullPath) {
			keptSet.matches = append(keptSet.matches, entry.FullPath)
			keptSet.kept[entry.FullPath] = struct{}{}
		}
	}
	if len(keptSet.matches) == 0 {
		return keptSet
	}

	for _, entry := range entries {
		if _, alreadyKept := keptSet.kept[entry.FullPath]; alreadyKept {
			continue
		}
		if containedInAny(entry.FullPath, keptSet.matches) {
			keptSet.kept[entry.FullPath] = struct{}{}
		}
	}
	return keptSet
}

func containedInAny(path string, matches []string) bool {
	for _, matchedPath := range matches {
		if strings.Contains(matchedPath, path) {
			return true
		}
	}
	return false
}

// Active reports whether an inclusion pattern was supplied.
func (keptSet KeptSet) Active() bool {
	return keptSet.active
}

// Allows reports whether path passes inclusion filtering.
func (keptSet KeptSet) Allows(path string) bool {
	if !keptSet.active {
		return true
	}
	_, kept := keptSet.kept[path]
	return kept
}

// Matches returns the directly matched paths in traversal order.
func (keptSet KeptSet) Matches() []string {
	return append([]string(nil), keptSet.matches...)
}

// Len returns the number of kept paths.
func (keptSet KeptSet) Len() int {
	return len(keptSet.kept)
}
