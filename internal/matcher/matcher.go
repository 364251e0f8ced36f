package matcher

import (
	"regexp"
	"slices"
	"strings"

	"github.com/bnema/request-inspector/internal/models"
	"github.com/bnema/request-inspector/internal/options"
)

// Matcher tests requests against a filter
type Matcher struct {
	filter  models.Filter
	pattern *regexp.Regexp
}

// New compiles a filter into a matcher
func New(f models.Filter) (*Matcher, error) {
	m := &Matcher{filter: f}
	if f.URLPattern != "" {
		re, err := CompileGlob(f.URLPattern)
		if err != nil {
			return nil, err
		}
		m.pattern = re
	}
	return m, nil
}

// Match reports whether a request satisfies every present constraint
func (m *Matcher) Match(r models.NetworkRequest) bool {
	f := m.filter

	if f.Method != "" && r.Method != f.Method {
		return false
	}
	if f.CacheControl != "" && r.CacheControl != f.CacheControl {
		return false
	}
	if f.XCache != "" && r.XCache != f.XCache {
		return false
	}
	if f.FulfilledBy != "" && r.FulfilledBy != f.FulfilledBy {
		return false
	}
	if len(f.Domains) > 0 && !matchesDomain(f.Domains, options.HostOf(r)) {
		return false
	}
	if m.pattern != nil && !m.pattern.MatchString(r.URL) {
		return false
	}
	if f.CacheRank != "" && models.ClassifyCacheRank(r) != f.CacheRank {
		return false
	}
	return true
}

// matchesDomain compares hostnames case-insensitively
func matchesDomain(domains []string, host string) bool {
	if host == "" {
		return false
	}
	return slices.ContainsFunc(domains, func(d string) bool {
		return strings.EqualFold(d, host)
	})
}

// Apply returns the requests matching the filter, in input order
func Apply(f models.Filter, data []models.NetworkRequest) ([]models.NetworkRequest, error) {
	if f.IsEmpty() {
		return data, nil
	}

	m, err := New(f)
	if err != nil {
		return nil, err
	}

	result := make([]models.NetworkRequest, 0, len(data))
	for _, r := range data {
		if m.Match(r) {
			result = append(result, r)
		}
	}
	return result, nil
}
