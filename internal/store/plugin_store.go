package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cytoscape/cyweb/internal/models"
	"github.com/cytoscape/cyweb/internal/util"
)

// Submission is the distilled record persisted for one validated form
// submission. Authors are stored in slice order as the authorship sequence.
type Submission struct {
	Name           string
	Description    string
	LicenseBrief   string
	LicenseDetail  string
	ProjectURL     string
	Category       string // category name, resolved to an id on insert
	Version        string
	ReleaseDate    string // YYYY-MM-DD or empty
	ReleaseNote    string
	ReleaseNoteURL string
	Comment        string
	JarURL         string
	SourceURL      string
	CyVersions     string // comma-separated compatibility tags
	Reference      string
	Authors        []models.Author
	File           *models.PluginFile // nil when only a jar URL was given
}

// SubmissionResult reports the identifiers created by CreateSubmission.
type SubmissionResult struct {
	PluginID  int64
	VersionID int64
	FileUUID  string
}

// ListCategories returns the fixed category set in insertion order.
func (s *Store) ListCategories() ([]*models.Category, error) {
	rows, err := s.db.Query("SELECT id, name FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// VersionExists reports whether a version already exists for the plugin
// identified by (category name, plugin name). This is the user-facing
// pre-check; the UNIQUE constraint remains the authoritative guard.
func (s *Store) VersionExists(category, name, version string) (bool, error) {
	var id int64
	err := s.db.QueryRow(`
		SELECT pv.id
		FROM plugin_versions pv
		JOIN plugins p ON pv.plugin_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE c.name = ? AND p.name = ? AND pv.version = ?
	`, category, name, version).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateSubmission persists one submission atomically: the optional uploaded
// file, the plugin row (created on first submission of a name+category pair,
// reused afterwards), the version row, and the ordered author records.
func (s *Store) CreateSubmission(sub *Submission) (*SubmissionResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var result SubmissionResult

	var fileID sql.NullInt64
	if sub.File != nil {
		result.FileUUID = uuid.NewString()
		res, err := tx.Exec(
			"INSERT INTO plugin_files (uuid, file_name, mime_type, content, created_at) VALUES (?, ?, ?, ?, ?)",
			result.FileUUID, sub.File.FileName, sub.File.MimeType, sub.File.Content, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to store uploaded file: %w", err)
		}
		fileID.Int64, _ = res.LastInsertId()
		fileID.Valid = true
	}

	var categoryID int64
	err = tx.QueryRow("SELECT id FROM categories WHERE name = ?", sub.Category).Scan(&categoryID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unknown category %q", sub.Category)
	}
	if err != nil {
		return nil, err
	}

	// Reuse the plugin row if an earlier version of this plugin exists.
	err = tx.QueryRow("SELECT id FROM plugins WHERE name = ? AND category_id = ?", sub.Name, categoryID).
		Scan(&result.PluginID)
	if err == sql.ErrNoRows {
		res, err := tx.Exec(`
			INSERT INTO plugins (name, description, license_brief, license_detail, project_url, category_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sub.Name, sub.Description, sub.LicenseBrief, sub.LicenseDetail, sub.ProjectURL, categoryID, time.Now())
		if err != nil {
			return nil, err
		}
		result.PluginID, _ = res.LastInsertId()
	} else if err != nil {
		return nil, err
	}

	res, err := tx.Exec(`
		INSERT INTO plugin_versions
		(plugin_id, file_id, version, release_date, release_note, release_note_url, comment, jar_url, source_url, cy_versions, status, reference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.PluginID, fileID, sub.Version, sub.ReleaseDate, sub.ReleaseNote, sub.ReleaseNoteURL,
		sub.Comment, sub.JarURL, sub.SourceURL, sub.CyVersions, models.StatusNew, sub.Reference, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateVersion
		}
		return nil, err
	}
	result.VersionID, _ = res.LastInsertId()

	for seq, author := range sub.Authors {
		res, err := tx.Exec(
			"INSERT INTO authors (name, email, affiliation, affiliation_url) VALUES (?, ?, ?, ?)",
			author.Name, author.Email, author.Affiliation, author.AffiliationURL)
		if err != nil {
			return nil, err
		}
		authorID, _ := res.LastInsertId()
		_, err = tx.Exec(
			"INSERT INTO plugin_authors (version_id, author_id, authorship_seq) VALUES (?, ?, ?)",
			result.VersionID, authorID, seq)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetVersionDetail fetches a plugin version joined with its plugin, category,
// and ordered authors, as needed to pre-populate the edit form. Returns
// ErrNotFound for an unknown version id.
func (s *Store) GetVersionDetail(versionID int64) (*models.VersionDetail, error) {
	var d models.VersionDetail
	var fileID sql.NullInt64
	var fileUUID sql.NullString
	err := s.db.QueryRow(`
		SELECT pv.id, pv.plugin_id, pv.file_id, pf.uuid, pv.version, pv.release_date,
		       pv.release_note, pv.release_note_url, pv.comment, pv.jar_url, pv.source_url,
		       pv.cy_versions, pv.status, pv.reference, pv.created_at,
		       p.id, p.name, p.description, p.license_brief, p.license_detail, p.project_url, p.created_at,
		       c.id, c.name
		FROM plugin_versions pv
		JOIN plugins p ON pv.plugin_id = p.id
		JOIN categories c ON p.category_id = c.id
		LEFT JOIN plugin_files pf ON pv.file_id = pf.id
		WHERE pv.id = ?
	`, versionID).Scan(
		&d.Version.ID, &d.Version.PluginID, &fileID, &fileUUID, &d.Version.Version, &d.Version.ReleaseDate,
		&d.Version.ReleaseNote, &d.Version.ReleaseNoteURL, &d.Version.Comment, &d.Version.JarURL, &d.Version.SourceURL,
		&d.Version.CyVersions, &d.Version.Status, &d.Version.Reference, &d.Version.CreatedAt,
		&d.Plugin.ID, &d.Plugin.Name, &d.Plugin.Description, &d.Plugin.LicenseBrief, &d.Plugin.LicenseDetail,
		&d.Plugin.ProjectURL, &d.Plugin.CreatedAt,
		&d.Category.ID, &d.Category.Name,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if fileID.Valid {
		d.Version.FileID = &fileID.Int64
	}
	d.Version.FileUUID = fileUUID.String
	d.Plugin.CategoryID = d.Category.ID
	d.Plugin.Category = d.Category.Name

	rows, err := s.db.Query(`
		SELECT a.id, a.name, a.email, a.affiliation, a.affiliation_url
		FROM authors a
		JOIN plugin_authors pa ON a.id = pa.author_id
		WHERE pa.version_id = ?
		ORDER BY pa.authorship_seq ASC
	`, versionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Affiliation, &a.AffiliationURL); err != nil {
			return nil, err
		}
		d.Authors = append(d.Authors, a)
	}
	return &d, rows.Err()
}

// UpdateVersionStatus changes only the status column of the targeted version.
// Other form fields are intentionally left untouched by the edit actions.
func (s *Store) UpdateVersionStatus(versionID int64, status string) error {
	res, err := s.db.Exec("UPDATE plugin_versions SET status = ? WHERE id = ?", status, versionID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublishedPlugins returns all plugins that have at least one published
// version, with their published versions ordered newest-first.
func (s *Store) ListPublishedPlugins() ([]*models.Plugin, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.description, p.license_brief, p.license_detail, p.project_url,
		       p.category_id, c.name, p.created_at,
		       pv.id, pv.file_id, pf.uuid, pv.version, pv.release_date, pv.release_note,
		       pv.release_note_url, pv.comment, pv.jar_url, pv.source_url, pv.cy_versions,
		       pv.status, pv.reference, pv.created_at
		FROM plugins p
		JOIN categories c ON p.category_id = c.id
		JOIN plugin_versions pv ON pv.plugin_id = p.id
		LEFT JOIN plugin_files pf ON pv.file_id = pf.id
		WHERE pv.status = ?
		ORDER BY c.id ASC, p.name ASC
	`, models.StatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plugins []*models.Plugin
	byID := make(map[int64]*models.Plugin)
	for rows.Next() {
		var p models.Plugin
		var v models.PluginVersion
		var fileID sql.NullInt64
		var fileUUID sql.NullString
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.LicenseBrief, &p.LicenseDetail, &p.ProjectURL,
			&p.CategoryID, &p.Category, &p.CreatedAt,
			&v.ID, &fileID, &fileUUID, &v.Version, &v.ReleaseDate, &v.ReleaseNote,
			&v.ReleaseNoteURL, &v.Comment, &v.JarURL, &v.SourceURL, &v.CyVersions,
			&v.Status, &v.Reference, &v.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if fileID.Valid {
			v.FileID = &fileID.Int64
		}
		v.FileUUID = fileUUID.String
		v.PluginID = p.ID

		plugin, ok := byID[p.ID]
		if !ok {
			plugin = &p
			byID[p.ID] = plugin
			plugins = append(plugins, plugin)
		}
		plugin.Versions = append(plugin.Versions, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Order each plugin's versions newest-first, semver-aware.
	for _, p := range plugins {
		sort.SliceStable(p.Versions, func(i, j int) bool {
			return util.CompareVersions(p.Versions[i].Version, p.Versions[j].Version) > 0
		})
	}
	return plugins, nil
}
