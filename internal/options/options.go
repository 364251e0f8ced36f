package options

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/bnema/request-inspector/internal/models"
)

// ErrInvalidURL is returned when a request URL has no parseable host
var ErrInvalidURL = errors.New("invalid url")

// Options holds the selectable values of every filter control
type Options struct {
	Methods       []string `json:"method" yaml:"method"`
	Domains       []string `json:"domains" yaml:"domains"`
	URLPatterns   []string `json:"urlPattern" yaml:"urlPattern"`
	CacheControls []string `json:"cacheControl" yaml:"cacheControl"`
	XCaches       []string `json:"xCache" yaml:"xCache"`
	FulfilledBy   []string `json:"fulfilledBy" yaml:"fulfilledBy"`
	CacheRanks    []string `json:"cacheRank" yaml:"cacheRank"`
}

// For returns the option list of a field
func (o Options) For(field models.Field) []string {
	switch field {
	case models.FieldMethod:
		return o.Methods
	case models.FieldDomains:
		return o.Domains
	case models.FieldURLPattern:
		return o.URLPatterns
	case models.FieldCacheControl:
		return o.CacheControls
	case models.FieldXCache:
		return o.XCaches
	case models.FieldFulfilledBy:
		return o.FulfilledBy
	case models.FieldCacheRank:
		return o.CacheRanks
	}
	return nil
}

// NonEmpty keeps every value except the empty string
func NonEmpty(s string) bool {
	return s != ""
}

// Unique returns the distinct values in first-occurrence order.
// keep may be nil to keep every value.
func Unique[T comparable](values []T, keep func(T) bool) []T {
	seen := make(map[T]bool, len(values))
	result := make([]T, 0, len(values))

	for _, v := range values {
		if keep != nil && !keep(v) {
			continue
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}

	return result
}

// Collect maps every request through accessor and returns the unique results
func Collect(data []models.NetworkRequest, accessor func(models.NetworkRequest) string, keep func(string) bool) []string {
	values := make([]string, len(data))
	for i, r := range data {
		values[i] = accessor(r)
	}
	return Unique(values, keep)
}

// maxPort is the largest valid TCP port
const maxPort = 65535

// Hostname extracts the lower-cased host of an absolute URL, without port.
// Only the scheme and authority are parsed: path, query and fragment may
// hold anything, as browsers accept them unescaped.
func Hostname(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)

	i := strings.Index(s, "://")
	if i <= 0 {
		return "", fmt.Errorf("%w: %q: not an absolute url", ErrInvalidURL, rawURL)
	}

	rest := s[i+3:]
	if j := strings.IndexAny(rest, "/?#\\"); j >= 0 {
		rest = rest[:j]
	}
	// Userinfo never reaches the hostname
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}

	u, err := url.Parse(s[:i+3] + rest)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidURL, rawURL, err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q: no host", ErrInvalidURL, rawURL)
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err != nil || n > maxPort {
			return "", fmt.Errorf("%w: %q: port out of range", ErrInvalidURL, rawURL)
		}
	}
	return strings.ToLower(u.Hostname()), nil
}

// HostnameOr returns the hostname of rawURL, or fallback when it cannot be parsed
func HostnameOr(rawURL, fallback string) string {
	host, err := Hostname(rawURL)
	if err != nil {
		return fallback
	}
	return host
}

// HostOf is the accessor used for domain options
func HostOf(r models.NetworkRequest) string {
	return HostnameOr(r.URL, "")
}

// Derive computes every option list from data.
// Method, cache-control and x-cache lists keep empty values as observed.
func Derive(data []models.NetworkRequest) Options {
	domains := Collect(data, HostOf, NonEmpty)

	return Options{
		Methods:       Collect(data, models.MethodOf, nil),
		Domains:       domains,
		URLPatterns:   slices.Clone(domains),
		CacheControls: Collect(data, models.CacheControlOf, nil),
		XCaches:       Collect(data, models.XCacheOf, nil),
		FulfilledBy:   Collect(data, models.FulfilledByOf, NonEmpty),
		CacheRanks:    models.RankLabels(),
	}
}
