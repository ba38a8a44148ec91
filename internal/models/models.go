// Entity types shared between the store and the HTTP layer.

package models

import "time"

// PluginVersion lifecycle states. A version enters the database as "new" and
// only a staff edit action moves it to "published" (or back).
const (
	StatusNew       = "new"
	StatusPublished = "published"
)

// CategoryPlaceholder is the first option of the category select and is not a
// valid choice.
const CategoryPlaceholder = "Please choose one"

// CategoryNames is the fixed set of plugin categories, in display order. The
// categories table is seeded with exactly these rows.
var CategoryNames = []string{
	"Analysis Plugins",
	"Network and Attribute I/O Plugins",
	"Network Inference Plugins",
	"Functional Enrichment Plugins",
	"Communication/Scripting Plugins",
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Plugin is a third-party extension entry, unique per (name, category).
type Plugin struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	LicenseBrief  string    `json:"license_brief,omitempty"`
	LicenseDetail string    `json:"license_detail,omitempty"`
	ProjectURL    string    `json:"project_url,omitempty"`
	CategoryID    int64     `json:"category_id"`
	Category      string    `json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Versions []*PluginVersion `json:"versions,omitempty"`
}

// PluginVersion is one submitted release of a plugin.
type PluginVersion struct {
	ID             int64     `json:"id"`
	PluginID       int64     `json:"plugin_id"`
	FileID         *int64    `json:"file_id,omitempty"`
	FileUUID       string    `json:"file_uuid,omitempty"`
	Version        string    `json:"version"`
	ReleaseDate    string    `json:"release_date,omitempty"` // YYYY-MM-DD, may be empty
	ReleaseNote    string    `json:"release_note,omitempty"`
	ReleaseNoteURL string    `json:"release_note_url,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	JarURL         string    `json:"jar_url,omitempty"`
	SourceURL      string    `json:"source_url,omitempty"`
	CyVersions     string    `json:"cy_versions,omitempty"` // comma-separated tags, e.g. "2.3,2.4"
	Status         string    `json:"status"`
	Reference      string    `json:"reference,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PluginFile is an uploaded binary stored as a blob. The UUID is the public
// download token; the numeric id never leaves the store.
type PluginFile struct {
	ID        int64
	UUID      string
	FileName  string
	MimeType  string
	Content   []byte
	CreatedAt time.Time
}

// Author is recorded fresh for every submission; authors are not deduplicated
// across versions.
type Author struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"-"` // never exposed publicly
	Affiliation    string `json:"affiliation,omitempty"`
	AffiliationURL string `json:"affiliation_url,omitempty"`
}

// VersionDetail is a PluginVersion joined with its plugin, category, and
// ordered authors, as needed to pre-populate the edit form.
type VersionDetail struct {
	Version  PluginVersion
	Plugin   Plugin
	Category Category
	Authors  []Author // ordered by authorship sequence
}

// User is a staff account that may operate the edit mode.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
