package router

import (
	"net/http"
)

// middlewareMaintenance answers 503 for route patterns under maintenance.
func middlewareMaintenance(routes []string) Middleware {
	blocked := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		if route != "" {
			blocked[route] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
