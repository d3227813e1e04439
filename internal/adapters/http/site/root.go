// Package site serves the dashboard's embedded static assets.
package site

import (
	"context"
	"errors"
	"net/http"
)

// ErrServe is reserved for asset serving failures.
var ErrServe = errors.New("static asset serve failed")

// Prefix is the URL path the assets are mounted under.
const Prefix = "/static/"

// Register attaches the embedded asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(Prefix, NewAssetHandler())
}

// NewAssetHandler serves files from the embedded static directory with a
// short cache lifetime. Directory listings are refused.
func NewAssetHandler() http.Handler {
	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == Prefix || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		files.ServeHTTP(w, r)
	})
}
