package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cytoscape/cyweb/internal/store"
)

// handlePluginsPage renders the public directory of published plugins.
func (s *Server) handlePluginsPage(w http.ResponseWriter, r *http.Request) {
	plugins, err := s.store.ListPublishedPlugins()
	if err != nil {
		log.Printf("Error listing published plugins: %v", err)
		s.renderError(w, http.StatusInternalServerError, "A storage error occurred. Please try again later.")
		return
	}
	s.renderPage(w, http.StatusOK, "plugins.html", map[string]interface{}{
		"Title":   "Cytoscape plugins",
		"Plugins": plugins,
	})
}

// handleListPlugins serves the published plugin directory as JSON.
func (s *Server) handleListPlugins(w http.ResponseWriter, r *http.Request) {
	plugins, err := s.store.ListPublishedPlugins()
	if err != nil {
		log.Printf("Error listing published plugins: %v", err)
		RespondWithError(w, http.StatusInternalServerError, "Failed to list plugins")
		return
	}
	RespondWithJSON(w, http.StatusOK, plugins)
}

// handleDownloadFile streams an uploaded jar by its download token.
func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "fileUUID")
	file, err := s.store.GetFileByUUID(token)
	if errors.Is(err, store.ErrNotFound) {
		RespondWithError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching file %s: %v", token, err)
		RespondWithError(w, http.StatusInternalServerError, "Failed to fetch file")
		return
	}

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/java-archive"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}
