package models

import (
	"fmt"
	"slices"
)

// Field identifies one filterable key of a Filter
type Field int

const (
	FieldMethod Field = iota
	FieldDomains
	FieldURLPattern
	FieldCacheControl
	FieldXCache
	FieldFulfilledBy
	FieldCacheRank
)

// Fields lists every filter field in display order
var Fields = []Field{
	FieldMethod,
	FieldDomains,
	FieldURLPattern,
	FieldCacheControl,
	FieldXCache,
	FieldFulfilledBy,
	FieldCacheRank,
}

var fieldKeys = map[Field]string{
	FieldMethod:       "method",
	FieldDomains:      "domains",
	FieldURLPattern:   "urlPattern",
	FieldCacheControl: "cacheControl",
	FieldXCache:       "xCache",
	FieldFulfilledBy:  "fulfilledBy",
	FieldCacheRank:    "cacheRank",
}

var fieldLabels = map[Field]string{
	FieldMethod:       "Method",
	FieldDomains:      "Domains",
	FieldURLPattern:   "URL Pattern",
	FieldCacheControl: "Cache Control",
	FieldXCache:       "X-Cache",
	FieldFulfilledBy:  "Fulfilled By",
	FieldCacheRank:    "Cache Rank",
}

// Key returns the wire key of the field (e.g. "cacheControl")
func (f Field) Key() string {
	if k, ok := fieldKeys[f]; ok {
		return k
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Label returns the display label of the field
func (f Field) Label() string {
	return fieldLabels[f]
}

func (f Field) String() string {
	return f.Key()
}

// Filter holds the active constraints on the request table.
// An empty string or nil slice means no constraint on that field.
type Filter struct {
	Method       string   `json:"method,omitempty" yaml:"method,omitempty"`
	Domains      []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	URLPattern   string   `json:"urlPattern,omitempty" yaml:"urlPattern,omitempty"`
	CacheControl string   `json:"cacheControl,omitempty" yaml:"cacheControl,omitempty"`
	XCache       string   `json:"xCache,omitempty" yaml:"xCache,omitempty"`
	FulfilledBy  string   `json:"fulfilledBy,omitempty" yaml:"fulfilledBy,omitempty"`
	CacheRank    string   `json:"cacheRank,omitempty" yaml:"cacheRank,omitempty"`
}

// IsEmpty returns true if no constraint is set
func (f Filter) IsEmpty() bool {
	return f.Method == "" &&
		len(f.Domains) == 0 &&
		f.URLPattern == "" &&
		f.CacheControl == "" &&
		f.XCache == "" &&
		f.FulfilledBy == "" &&
		f.CacheRank == ""
}

// Has reports whether the field is present
func (f Filter) Has(field Field) bool {
	return !f.Get(field).IsEmpty()
}

// Get returns the current value of a field; absent fields yield Null
func (f Filter) Get(field Field) Value {
	var v Value
	switch field {
	case FieldMethod:
		v = Single(f.Method)
	case FieldDomains:
		v = Multi(f.Domains)
	case FieldURLPattern:
		v = Single(f.URLPattern)
	case FieldCacheControl:
		v = Single(f.CacheControl)
	case FieldXCache:
		v = Single(f.XCache)
	case FieldFulfilledBy:
		v = Single(f.FulfilledBy)
	case FieldCacheRank:
		v = Single(f.CacheRank)
	}
	if v.IsEmpty() {
		return Null()
	}
	return v
}

// With returns a copy of the filter with one field replaced by value.
// An empty value removes the field. The receiver is left untouched.
func (f Filter) With(field Field, value Value) Filter {
	next := f
	next.Domains = slices.Clone(f.Domains)

	s := value.String()
	if value.IsEmpty() {
		s = ""
	}

	switch field {
	case FieldMethod:
		next.Method = s
	case FieldDomains:
		if value.IsEmpty() {
			next.Domains = nil
		} else {
			next.Domains = value.Strings()
		}
	case FieldURLPattern:
		next.URLPattern = s
	case FieldCacheControl:
		next.CacheControl = s
	case FieldXCache:
		next.XCache = s
	case FieldFulfilledBy:
		next.FulfilledBy = s
	case FieldCacheRank:
		next.CacheRank = s
	}
	return next
}

// Equal compares two filters field by field
func (f Filter) Equal(other Filter) bool {
	return f.Method == other.Method &&
		slices.Equal(f.Domains, other.Domains) &&
		f.URLPattern == other.URLPattern &&
		f.CacheControl == other.CacheControl &&
		f.XCache == other.XCache &&
		f.FulfilledBy == other.FulfilledBy &&
		f.CacheRank == other.CacheRank
}
