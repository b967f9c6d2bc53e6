package cache

import (
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"strings"
)

const keyPrefix = "views.decorators.cache"

// KeyBuilder generates page cache keys in the views.decorators.cache layout:
//
//	views.decorators.cache.cache_page.<label>.<METHOD>.<md5(url)>.<md5(vary)>.<locale>.<tz>
//
// Deployments sharing one Redis and the same settings read each other's entries.
type KeyBuilder struct {
	Locale   string
	TimeZone string
}

// PageKey returns the key for the response to r under label.
// varyHeaders names request headers whose values distinguish cached variants.
func (k KeyBuilder) PageKey(label string, r *http.Request, varyHeaders ...string) string {
	vary := md5.New()
	for _, h := range varyHeaders {
		if v := r.Header.Get(h); v != "" {
			vary.Write([]byte(v))
		}
	}
	url := md5.Sum([]byte(AbsoluteURL(r)))
	return strings.Join([]string{
		keyPrefix + ".cache_page",
		label,
		r.Method,
		hex.EncodeToString(url[:]),
		hex.EncodeToString(vary.Sum(nil)),
		k.Locale,
		k.TimeZone,
	}, ".")
}

// Pattern returns the glob that matches every page or header entry stored under label.
func (k KeyBuilder) Pattern(label string) string {
	return keyPrefix + ".cache_*." + label + ".*." + k.Locale + "." + k.TimeZone
}

// IndexKey returns the set that tracks the keys written under label.
// It does not match Pattern.
func (k KeyBuilder) IndexKey(label string) string {
	return keyPrefix + ".index." + label
}

// AbsoluteURL rebuilds the full request URL including the query string.
// X-Forwarded-Proto is honoured only for "http" and "https" so clients cannot mint extra cache variants.
func AbsoluteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else {
		switch fwd := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); fwd {
		case "http", "https":
			scheme = fwd
		}
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
