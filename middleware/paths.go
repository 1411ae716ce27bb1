// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"path"
	"strings"
)

// Collections whose URLs end in a slash
var slashPrefixes = []string{"/polls", "/questions", "/answerchoices"}

const formatSuffix = ".json"

// NormalizePath maps the accepted URL spellings of a resource onto its
// canonical form: "/polls/1", "/polls/1.json" and "/polls/1/.json" all
// become "/polls/1/". Any other format suffix is 404.
func NormalizePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := canonicalPath(r.URL.Path)
		if !ok {
			ErrorResponse(w, http.StatusNotFound, "Unsupported format suffix")
			return
		}
		if p == r.URL.Path {
			next.ServeHTTP(w, r)
			return
		}

		r2 := new(http.Request)
		*r2 = *r
		u := *r.URL
		u.Path = p
		u.RawPath = ""
		r2.URL = &u
		next.ServeHTTP(w, r2)
	})
}

func canonicalPath(p string) (string, bool) {
	if !hasSlashPrefix(p) {
		return p, true
	}

	trimmed := strings.TrimSuffix(p, "/")
	last := path.Base(trimmed)
	if ext := path.Ext(last); ext != "" {
		if ext != formatSuffix {
			return "", false
		}
		trimmed = strings.TrimSuffix(trimmed, formatSuffix)
	}

	return strings.TrimSuffix(trimmed, "/") + "/", true
}

func hasSlashPrefix(p string) bool {
	for _, prefix := range slashPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") || strings.HasPrefix(p, prefix+".") {
			return true
		}
	}
	return false
}
