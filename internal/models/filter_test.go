package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterWithSetsField(t *testing.T) {
	before := Filter{XCache: "HIT"}
	after := before.With(FieldMethod, Single("POST"))

	assert.Equal(t, Filter{XCache: "HIT", Method: "POST"}, after)
	assert.Equal(t, Filter{XCache: "HIT"}, before, "receiver must not change")
}

func TestFilterWithNullRemovesField(t *testing.T) {
	before := Filter{XCache: "HIT", Method: "POST"}
	after := before.With(FieldMethod, Null())

	assert.Equal(t, Filter{XCache: "HIT"}, after)
	assert.False(t, after.Has(FieldMethod))
}

func TestFilterWithEmptyValuesRemove(t *testing.T) {
	full := Filter{
		Method:       "GET",
		Domains:      []string{"a.com"},
		URLPattern:   "*.js",
		CacheControl: "no-cache",
		XCache:       "HIT",
		FulfilledBy:  "edge",
		CacheRank:    RankEdgeHit,
	}

	empties := []Value{Null(), Single(""), Multi(nil), Multi([]string{})}

	for _, field := range Fields {
		for _, v := range empties {
			after := full.With(field, v)
			assert.False(t, after.Has(field), "field %s should be removed", field)
			assertOnlyFieldDiffers(t, full, after, field)
		}
	}
}

func TestFilterWithChangesExactlyOneField(t *testing.T) {
	base := Filter{Method: "GET", Domains: []string{"a.com", "b.com"}, CacheRank: RankCacheable}

	values := map[Field]Value{
		FieldMethod:       Single("DELETE"),
		FieldDomains:      Multi([]string{"c.com"}),
		FieldURLPattern:   Single("*/api/*"),
		FieldCacheControl: Single("private"),
		FieldXCache:       Single("MISS"),
		FieldFulfilledBy:  Single("origin1"),
		FieldCacheRank:    Single(RankUnknown),
	}

	for field, v := range values {
		after := base.With(field, v)
		assert.Equal(t, v.Strings(), after.Get(field).Strings(), "field %s", field)
		assertOnlyFieldDiffers(t, base, after, field)
	}
}

func TestFilterWithCopiesDomains(t *testing.T) {
	base := Filter{Domains: []string{"a.com"}}
	after := base.With(FieldMethod, Single("GET"))

	after.Domains[0] = "mutated.com"
	assert.Equal(t, []string{"a.com"}, base.Domains)

	input := []string{"x.com"}
	withDomains := base.With(FieldDomains, Multi(input))
	input[0] = "y.com"
	assert.Equal(t, []string{"x.com"}, withDomains.Domains)
}

func TestFilterGet(t *testing.T) {
	f := Filter{Method: "GET", Domains: []string{"a.com"}}

	assert.Equal(t, ValueSingle, f.Get(FieldMethod).Kind())
	assert.Equal(t, "GET", f.Get(FieldMethod).String())
	assert.Equal(t, ValueMulti, f.Get(FieldDomains).Kind())
	assert.Equal(t, ValueNull, f.Get(FieldXCache).Kind())
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, f.IsEmpty())
}

func TestFieldKeysAndLabels(t *testing.T) {
	keys := make(map[string]bool)
	for _, field := range Fields {
		assert.NotEmpty(t, field.Label())
		assert.False(t, keys[field.Key()], "duplicate key %s", field.Key())
		keys[field.Key()] = true
	}
	assert.Equal(t, "cacheControl", FieldCacheControl.Key())
	assert.Equal(t, "URL Pattern", FieldURLPattern.Label())
}

func TestFilterEqual(t *testing.T) {
	a := Filter{Method: "GET", Domains: []string{"a.com"}}
	assert.True(t, a.Equal(a.With(FieldXCache, Null())))
	assert.False(t, a.Equal(a.With(FieldDomains, Multi([]string{"b.com"}))))
	assert.False(t, a.Equal(a.With(FieldMethod, Single("POST"))))
}

func TestValue(t *testing.T) {
	assert.True(t, Null().IsEmpty())
	assert.True(t, Single("").IsEmpty())
	assert.True(t, Multi(nil).IsEmpty())
	assert.False(t, Single("x").IsEmpty())
	assert.False(t, Multi([]string{"x"}).IsEmpty())

	assert.Equal(t, []string{"x"}, Single("x").Strings())
	assert.Nil(t, Single("").Strings())
	assert.Equal(t, "a,b", Multi([]string{"a", "b"}).String())
}

func assertOnlyFieldDiffers(t *testing.T, before, after Filter, field Field) {
	t.Helper()
	for _, other := range Fields {
		if other == field {
			continue
		}
		assert.Equal(t, before.Get(other), after.Get(other), "field %s changed while editing %s", other, field)
	}
}
