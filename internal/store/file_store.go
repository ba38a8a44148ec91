package store

import (
	"database/sql"

	"github.com/cytoscape/cyweb/internal/models"
)

// GetFileByUUID fetches an uploaded plugin file by its public download token.
// Returns ErrNotFound for an unknown token.
func (s *Store) GetFileByUUID(token string) (*models.PluginFile, error) {
	var f models.PluginFile
	err := s.db.QueryRow(`
		SELECT id, uuid, file_name, mime_type, content, created_at
		FROM plugin_files
		WHERE uuid = ?
	`, token).Scan(&f.ID, &f.UUID, &f.FileName, &f.MimeType, &f.Content, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CountFiles returns the number of stored upload blobs.
func (s *Store) CountFiles() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM plugin_files").Scan(&count)
	return count, err
}
