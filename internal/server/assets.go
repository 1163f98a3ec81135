package server

import (
	"embed"
	"net/http"

	"github.com/pthm/junitguide/internal/render"
)

//go:embed assets
var assets embed.FS

func mustAsset(name string) string {
	b, err := assets.ReadFile("assets/" + name)
	if err != nil {
		panic("server: missing embedded asset " + name)
	}
	return string(b)
}

func serveAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write([]byte(body))
	}
}

func (s *Server) handleChromaCSS(w http.ResponseWriter, r *http.Request) {
	css, err := render.StyleSheet()
	if err != nil {
		s.logger.ErrorContext(r.Context(), "chroma style sheet", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	serveAsset("text/css; charset=utf-8", css)(w, r)
}
