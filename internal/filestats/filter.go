package filestats

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// patternSet holds compiled glob patterns. Patterns containing a slash
// match against the full slash-form path relative to the scan root;
// patterns without a slash match against any path element, so that a
// bare name like ".git" prunes the directory wherever it appears.
type patternSet struct {
	pathPatterns []string
	namePatterns []string
}

// compilePatterns validates the given doublestar patterns and splits
// them into path and name patterns.
func compilePatterns(patterns []string) (*patternSet, error) {
	set := &patternSet{}

	for _, pattern := range patterns {
		pattern = strings.Trim(pattern, "'\"") // Strip quotes first

		if pattern == "" {
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		if strings.Contains(pattern, "/") {
			set.pathPatterns = append(set.pathPatterns, pattern)
		} else {
			set.namePatterns = append(set.namePatterns, pattern)
		}
	}

	return set, nil
}

// empty reports whether the set contains no patterns.
func (p *patternSet) empty() bool {
	return len(p.pathPatterns) == 0 && len(p.namePatterns) == 0
}

// match reports whether the slash-form relative path matches any
// pattern in the set.
func (p *patternSet) match(relPath string) bool {
	for _, pattern := range p.pathPatterns {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}

	if len(p.namePatterns) == 0 {
		return false
	}

	for _, elem := range strings.Split(relPath, "/") {
		for _, pattern := range p.namePatterns {
			if ok, _ := path.Match(pattern, elem); ok {
				return true
			}
		}
	}

	return false
}
