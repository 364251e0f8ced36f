package models

// NetworkRequest represents one observed HTTP exchange
type NetworkRequest struct {
	Method       string `json:"1.method" yaml:"method"`
	URL          string `json:"2.url" yaml:"url"`
	CacheControl string `json:"3.cache-control" yaml:"cache-control"`
	XCache       string `json:"4.x-cache" yaml:"x-cache"`
	FulfilledBy  string `json:"8.fulfilledBy,omitempty" yaml:"fulfilled-by,omitempty"`
}

// Field accessors used for option derivation and matching
var (
	MethodOf       = func(r NetworkRequest) string { return r.Method }
	URLOf          = func(r NetworkRequest) string { return r.URL }
	CacheControlOf = func(r NetworkRequest) string { return r.CacheControl }
	XCacheOf       = func(r NetworkRequest) string { return r.XCache }
	FulfilledByOf  = func(r NetworkRequest) string { return r.FulfilledBy }
)
