package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankLabels(t *testing.T) {
	labels := RankLabels()
	assert.Len(t, labels, len(CacheRankings))
	assert.Equal(t, []string{RankEdgeHit, RankCacheable, RankRevalidate, RankUncachable, RankUnknown}, labels)
}

func TestClassifyCacheRank(t *testing.T) {
	tests := []struct {
		name     string
		req      NetworkRequest
		expected string
	}{
		{name: "hit wins over directives", req: NetworkRequest{XCache: "Hit from cloudfront", CacheControl: "no-store"}, expected: RankEdgeHit},
		{name: "no-store", req: NetworkRequest{CacheControl: "no-store"}, expected: RankUncachable},
		{name: "private", req: NetworkRequest{CacheControl: "Private, max-age=60", XCache: "MISS"}, expected: RankUncachable},
		{name: "no-cache", req: NetworkRequest{CacheControl: "no-cache"}, expected: RankRevalidate},
		{name: "max-age zero", req: NetworkRequest{CacheControl: "public, max-age=0"}, expected: RankRevalidate},
		{name: "cacheable miss", req: NetworkRequest{CacheControl: "public, max-age=3600", XCache: "MISS"}, expected: RankCacheable},
		{name: "miss without directives", req: NetworkRequest{XCache: "MISS"}, expected: RankRevalidate},
		{name: "nothing", req: NetworkRequest{}, expected: RankUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCacheRank(tt.req))
		})
	}
}

func TestEnabledSources(t *testing.T) {
	cfg := Config{Sources: []Source{
		{Name: "a", Enabled: true},
		{Name: "b"},
		{Name: "c", Enabled: true},
	}}

	enabled := cfg.EnabledSources()
	assert.Len(t, enabled, 2)
	assert.Equal(t, "c", enabled[1].Name)
}
