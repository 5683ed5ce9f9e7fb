package http

import (
	"net/http"
	"net/url"
	"strings"
)

// EdgeRouter is the process entry point. Requests under the API prefix reach
// the API engine with the prefix removed; everything else goes to fallback.
type EdgeRouter struct {
	prefix   string
	api      http.Handler
	fallback http.Handler
}

// NewEdgeRouter builds an EdgeRouter. A nil fallback answers 404 Not Found.
func NewEdgeRouter(prefix string, api, fallback http.Handler) *EdgeRouter {
	if fallback == nil {
		fallback = http.HandlerFunc(notFound)
	}
	return &EdgeRouter{
		prefix:   strings.TrimRight(prefix, "/"),
		api:      api,
		fallback: fallback,
	}
}

func (e *EdgeRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest, ok := stripPrefix(r.URL.Path, e.prefix)
	if !ok {
		e.fallback.ServeHTTP(w, r)
		return
	}

	// Method, headers and body travel unchanged; only the path is rewritten.
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = rest
	if r.URL.RawPath != "" {
		if rawRest, ok := stripPrefix(r.URL.RawPath, e.prefix); ok {
			r2.URL.RawPath = rawRest
		} else {
			r2.URL.RawPath = ""
		}
	}
	e.api.ServeHTTP(w, r2)
}

// stripPrefix matches whole path segments only: "/api" and "/api/x" match,
// "/apix" does not.
func stripPrefix(path, prefix string) (string, bool) {
	if prefix == "" {
		return path, true
	}
	if path == prefix {
		return "/", true
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):], true
	}
	return "", false
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
