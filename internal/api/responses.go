// Package api holds the response shapes and error mapping shared by all HTTP handlers.
package api

import (
	"net/http"
	"net/url"
	"strconv"
)

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Page is the limit/offset pagination envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the pagination envelope with absolute next/previous links.
func NewPage[T any](r *http.Request, results []T, count int64, limit, offset int) Page[T] {
	if results == nil {
		results = []T{}
	}
	p := Page[T]{Count: count, Results: results}
	if int64(offset+limit) < count {
		next := pageURL(r, limit, offset+limit)
		p.Next = &next
	}
	if offset > 0 {
		prev := pageURL(r, limit, max(offset-limit, 0))
		p.Previous = &prev
	}
	return p
}

func pageURL(r *http.Request, limit, offset int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	q := r.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
