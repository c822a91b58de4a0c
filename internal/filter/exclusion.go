package filter

// Exclusion drops entries whose full path the pattern matches directly.
// Descendants of an excluded directory are not matched here; they fall out
// of the tree because their parent node is missing.
type Exclusion struct {
	Matcher Matcher
}

// Excludes reports whether path should be dropped.
func (exclusion Exclusion) Excludes(path string) bool {
	if exclusion.Matcher == nil {
		return false
	}
	return exclusion.Matcher.Match(path)
}
