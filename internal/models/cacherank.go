package models

import "strings"

// CacheRank is one entry of the cache effectiveness reference table
type CacheRank struct {
	Rank        string `json:"rank" yaml:"rank"`
	Description string `json:"description" yaml:"description"`
}

// Cache rank labels
const (
	RankEdgeHit    = "A"
	RankCacheable  = "B"
	RankRevalidate = "C"
	RankUncachable = "D"
	RankUnknown    = "F"
)

// CacheRankings is the static reference table, best rank first
var CacheRankings = []CacheRank{
	{Rank: RankEdgeHit, Description: "served from a cache (X-Cache hit)"},
	{Rank: RankCacheable, Description: "cacheable response that missed the cache"},
	{Rank: RankRevalidate, Description: "cacheable only after revalidation (no-cache, max-age=0)"},
	{Rank: RankUncachable, Description: "never stored (no-store or private)"},
	{Rank: RankUnknown, Description: "no cache signal at all"},
}

// RankLabels returns the rank labels in table order
func RankLabels() []string {
	labels := make([]string, len(CacheRankings))
	for i, r := range CacheRankings {
		labels[i] = r.Rank
	}
	return labels
}

// ClassifyCacheRank assigns a rank label to a request from its cache headers
func ClassifyCacheRank(r NetworkRequest) string {
	xc := strings.ToUpper(r.XCache)
	if strings.Contains(xc, "HIT") {
		return RankEdgeHit
	}

	directives := parseCacheControl(r.CacheControl)
	switch {
	case directives["no-store"] || directives["private"]:
		return RankUncachable
	case directives["no-cache"] || directives["max-age=0"] || directives["must-revalidate"]:
		return RankRevalidate
	case len(directives) > 0:
		return RankCacheable
	case xc != "":
		// A cache saw the request but nothing says it may be stored
		return RankRevalidate
	}
	return RankUnknown
}

// parseCacheControl splits a Cache-Control header into lower-cased directives
func parseCacheControl(s string) map[string]bool {
	directives := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		directives[strings.ReplaceAll(part, " ", "")] = true
	}
	return directives
}
