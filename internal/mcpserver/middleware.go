package mcpserver

import (
	"log/slog"
	"net/http"

	"github.com/justinas/alice"
	"github.com/zyedidia/generic/mapset"
)

// guard is the chain every MCP request passes before reaching the game.
func (s *Server) guard(opts Options) alice.Chain {
	origins := mapset.New[string]()
	for _, origin := range opts.Origins {
		origins.Put(origin)
	}
	return alice.New(s.logRequest, allowOrigins(origins), requireToken(opts.Token))
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.LogAttrs(r.Context(), slog.LevelDebug, "received request",
			slog.String("proto", r.Proto), slog.String("method", r.Method), slog.String("uri", r.URL.RequestURI()))

		next.ServeHTTP(w, r)
	})
}

// allowOrigins rejects browser requests from pages outside origins. Clients that send no Origin header, such as
// MCP hosts running locally, pass.
func allowOrigins(origins mapset.Set[string]) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && !origins.Has(origin) {
				s := http.StatusForbidden
				http.Error(w, http.StatusText(s), s)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireToken checks the bearer token. An empty token disables the check.
func requireToken(token string) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
