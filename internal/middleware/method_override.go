package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MethodOverride lets HTML forms send PUT and PATCH through a POST with a _method field.
// The chi route method is updated too, since a parent router has already recorded POST.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch override := strings.ToUpper(r.PostFormValue("_method")); override {
			case http.MethodPut, http.MethodPatch:
				r.Method = override
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					rctx.RouteMethod = override
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
