// internal/middleware/methodoverride.go
package middleware

import "net/http"

// MethodOverride lets HTML forms tunnel PUT and DELETE through POST using
// a `_method` query parameter. It wraps the router rather than running
// inside it: the method must change before dispatch picks a route. Only
// POST may be overridden, and only to the two methods forms cannot express.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.URL.Query().Get("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
