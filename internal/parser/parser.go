package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/request-inspector/internal/models"
)

// ErrUnknownFormat is returned when the input is neither an export array nor a HAR log
var ErrUnknownFormat = errors.New("unknown dataset format")

// Format identifies the detected dataset format
type Format string

const (
	FormatExport Format = "export"
	FormatHAR    Format = "har"
)

// Parser parses request datasets
type Parser struct {
	stats Stats
}

// Stats tracks parsing statistics
type Stats struct {
	Format      Format
	Total       int
	Accepted    int
	Skipped     int
	SkipReasons map[string]int // Detailed breakdown of skipped records
}

// SkipReason constants
const (
	SkipNoRequest     = "har-entry-without-request"
	SkipInvalidRecord = "invalid-record"
)

// Response headers consulted for the fulfilled-by origin, in order
var fulfilledByHeaders = []string{"x-fulfilled-by", "x-served-by"}

// New creates a new parser
func New() *Parser {
	return &Parser{
		stats: Stats{
			SkipReasons: make(map[string]int),
		},
	}
}

// skip records a skipped record with reason
func (p *Parser) skip(reason string) {
	p.stats.Skipped++
	p.stats.SkipReasons[reason]++
}

// Stats returns parsing statistics
func (p *Parser) Stats() Stats {
	return p.stats
}

// Parse reads a dataset and returns its requests
func (p *Parser) Parse(r io.Reader) ([]models.NetworkRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnknownFormat)
	}

	switch trimmed[0] {
	case '[':
		p.stats.Format = FormatExport
		return p.parseExport(trimmed)
	case '{':
		p.stats.Format = FormatHAR
		return p.parseHAR(trimmed)
	}

	return nil, fmt.Errorf("%w: unexpected leading %q", ErrUnknownFormat, trimmed[0])
}

// parseExport parses a JSON array of inspection records
func (p *Parser) parseExport(data []byte) ([]models.NetworkRequest, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	requests := make([]models.NetworkRequest, 0, len(raw))
	for _, rec := range raw {
		p.stats.Total++

		var req models.NetworkRequest
		if err := json.Unmarshal(rec, &req); err != nil {
			p.skip(SkipInvalidRecord)
			continue
		}

		p.stats.Accepted++
		requests = append(requests, req)
	}

	return requests, nil
}

type harDocument struct {
	Log *struct {
		Entries []harEntry `json:"entries"`
	} `json:"log"`
}

type harEntry struct {
	Request *struct {
		Method string `json:"method"`
		URL    string `json:"url"`
	} `json:"request"`
	Response *struct {
		Headers []harHeader `json:"headers"`
	} `json:"response"`
}

type harHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// parseHAR parses a HAR 1.2 log
func (p *Parser) parseHAR(data []byte) ([]models.NetworkRequest, error) {
	var doc harDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding har: %w", err)
	}
	if doc.Log == nil {
		return nil, fmt.Errorf("%w: object without \"log\"", ErrUnknownFormat)
	}

	requests := make([]models.NetworkRequest, 0, len(doc.Log.Entries))
	for _, e := range doc.Log.Entries {
		p.stats.Total++

		if e.Request == nil {
			p.skip(SkipNoRequest)
			continue
		}

		req := models.NetworkRequest{
			Method: e.Request.Method,
			URL:    e.Request.URL,
		}
		if e.Response != nil {
			headers := e.Response.Headers
			req.CacheControl = headerValue(headers, "cache-control")
			req.XCache = headerValue(headers, "x-cache")
			for _, name := range fulfilledByHeaders {
				if v := headerValue(headers, name); v != "" {
					req.FulfilledBy = v
					break
				}
			}
		}

		p.stats.Accepted++
		requests = append(requests, req)
	}

	return requests, nil
}

// headerValue returns the first header value with a case-insensitive name match
func headerValue(headers []harHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return strings.TrimSpace(h.Value)
		}
	}
	return ""
}
