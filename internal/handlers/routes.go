package handlers

import (
	"net/http"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

// Routes wires every HTTP endpoint the server exposes.
func Routes(ws *WebSocketHandlers, health *HealthHandlers, reg *prometheus.Registry, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.HandleWebSocket)
	mux.HandleFunc("/health", health.Health)
	mux.HandleFunc("/server-info", health.ServerInfo)
	mux.Handle("/metrics", Metrics(reg))
	return CORS(allowedOrigins)(mux)
}

// CORS echoes allowed origins back and answers preflight requests.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(allowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
