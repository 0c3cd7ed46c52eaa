package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// registerStatic serves the bundled single-page UI in production. In
// development the bundler serves assets itself, so nothing is registered.
func (s *Server) registerStatic(mux *http.ServeMux) {
	if !s.app.Config.IsProduction() {
		return
	}

	dir := s.app.Config.Server.StaticDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.logger.Warn().Str("dir", dir).Msg("Static asset directory not found, UI will not be served")
		return
	}

	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			WriteError(w, http.StatusNotFound, "not found")
			return
		}

		// SPA fallback: unknown paths get index.html
		requested := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err != nil || info.IsDir() {
			http.ServeFile(w, r, index)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	s.logger.Info().Str("dir", dir).Msg("Serving bundled UI")
}
