// This file implements utilities for parsing request bodies and query
// parameters. The API is JSON in, JSON out; body parsing mirrors what a
// strict JSON decode of a flat object gives the handlers.

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MonthParams holds parsed year/month values from request parameters.
type MonthParams struct {
	Year  int
	Month int
}

// ParseMonthParams extracts year and month from query parameters, using the
// current date as defaults.
func ParseMonthParams(query url.Values) MonthParams {
	now := time.Now()
	params := MonthParams{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			params.Year = y
		}
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			params.Month = m
		}
	}

	return params
}

// RequestBody is a parsed flat JSON object. Values are kept loose because
// callers send amounts and ids as either strings or numbers.
type RequestBody struct {
	data map[string]any
}

// ParseRequestBody reads and decodes the request body. A body that is not a
// JSON object is an error the caller surfaces verbatim.
func ParseRequestBody(r *http.Request) (*RequestBody, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &RequestBody{data: data}, nil
}

// Has reports whether the key was present in the body.
func (b *RequestBody) Has(key string) bool {
	_, ok := b.data[key]
	return ok
}

// Get returns the value for key rendered as a string; numbers keep their
// shortest decimal form. Absent or null keys yield "".
func (b *RequestBody) Get(key string) string {
	v, ok := b.data[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(stringValue(v))
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
