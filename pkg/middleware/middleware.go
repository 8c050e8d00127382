// Package middleware provides the HTTP middleware stack shared by modules:
// an ordered chain, CORS, and request logging.
package middleware

import (
	"net/http"
	"slices"
)

// System manages an ordered stack of HTTP middleware. The first middleware
// added is the outermost.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type chain []func(http.Handler) http.Handler

// New creates an empty middleware System.
func New() System {
	return &chain{}
}

func (c *chain) Use(mw func(http.Handler) http.Handler) {
	*c = append(*c, mw)
}

func (c *chain) Apply(handler http.Handler) http.Handler {
	for _, mw := range slices.Backward(*c) {
		handler = mw(handler)
	}
	return handler
}
