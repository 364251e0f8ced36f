package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Characters to escape in regex (except *)
	rePlainChars = regexp.MustCompile(`[.+?^${}()|[\]\\]`)
	// Runs of asterisks collapse to one wildcard
	reAsterisks = regexp.MustCompile(`\*+`)
)

// GlobToRegex converts a URL pattern with * wildcards to a regex.
// A pattern without * matches anywhere in the URL; with * it must
// match the whole URL unless it starts or ends with a wildcard.
func GlobToRegex(pattern string) string {
	if pattern == "" || strings.Trim(pattern, "*") == "" {
		return ".*"
	}

	// Escape special regex characters (except *)
	reStr := rePlainChars.ReplaceAllString(pattern, `\$0`)

	if !strings.Contains(pattern, "*") {
		return "(?i)" + reStr
	}

	reStr = reAsterisks.ReplaceAllString(reStr, `.*`)
	return "(?i)^" + reStr + "$"
}

// CompileGlob compiles a URL pattern
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(GlobToRegex(pattern))
	if err != nil {
		return nil, fmt.Errorf("compiling url pattern %q: %w", pattern, err)
	}
	return re, nil
}
