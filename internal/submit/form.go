// The plugin submission workflow: one form, two modes. A request is either a
// public submission of a new plugin version or a staff edit of an existing
// one, and the same form state feeds validation, rendering, and persistence.

package submit

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cytoscape/cyweb/internal/models"
)

// CompatTags is the recognized set of Cytoscape compatibility checkboxes,
// in display order.
var CompatTags = []string{"2.0", "2.1", "2.2", "2.3", "2.4", "2.5"}

// Edit actions, matching the three submit buttons of the staff form.
const (
	ActionSubmit    = "Submit"
	ActionSave      = "Save"
	ActionPublish   = "Save and publish"
	ActionUnpublish = "Save and unpublish"
)

// Mode selects the workflow variant for one request. Edit mode is chosen
// exactly when a version identifier accompanies the request, either as the
// versionid query parameter or the round-tripped versionID hidden field.
type Mode struct {
	Edit      bool
	VersionID int64
}

// ResolveMode inspects the request once, before any binding or validation.
func ResolveMode(r *http.Request) Mode {
	raw := r.URL.Query().Get("versionid")
	if v := r.PostFormValue("versionID"); v != "" {
		raw = v
	}
	if raw == "" {
		return Mode{}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return Mode{}
	}
	return Mode{Edit: true, VersionID: id}
}

// Author is one entry of the ordered author list.
type Author struct {
	Name           string
	Email          string
	Affiliation    string
	AffiliationURL string
}

func (a Author) empty() bool {
	return a.Name == "" && a.Email == "" && a.Affiliation == "" && a.AffiliationURL == ""
}

// Upload carries the bytes of an uploaded jar file.
type Upload struct {
	FileName string
	MimeType string
	Content  []byte
}

// Form is the complete state of the submission form for one request. It is
// built once at request entry (blank, or from the stored version in edit
// mode), then overlaid with whatever fields the POST actually carried, so a
// failed validation round-trip echoes back exactly what the user typed.
type Form struct {
	Tried bool // set once the form has been submitted at least once

	Name           string
	Version        string
	Description    string
	ProjectURL     string
	Category       string
	Month          string
	Day            string
	Year           string
	ReleaseNote    string
	ReleaseNoteURL string
	JarURL         string
	SourceURL      string
	CyVersions     map[string]bool // keyed by CompatTags values
	Reference      string
	Comment        string
	LicenseBrief   string
	LicenseDetail  string
	Authors        []Author
	Upload         *Upload
	UploadErr      error // set when an uploaded file could not be read
	Action         string
}

// defaultAuthorSlots is how many blank author rows the form renders; the
// parser accepts any number of indexed author fields.
const defaultAuthorSlots = 2

// NewForm returns a blank form with the category placeholder selected.
func NewForm() *Form {
	return &Form{
		Category:   models.CategoryPlaceholder,
		CyVersions: make(map[string]bool),
		Authors:    make([]Author, defaultAuthorSlots),
	}
}

// FromVersionDetail pre-populates a form from a stored version for the first
// visit of an edit request: the release date is decomposed into month, day,
// and year fields and the compatibility tag list into per-token flags.
func FromVersionDetail(d *models.VersionDetail) *Form {
	f := NewForm()
	f.Name = d.Plugin.Name
	f.Description = d.Plugin.Description
	f.LicenseBrief = d.Plugin.LicenseBrief
	f.LicenseDetail = d.Plugin.LicenseDetail
	f.ProjectURL = d.Plugin.ProjectURL
	f.Category = d.Category.Name
	f.Version = d.Version.Version
	f.Year, f.Month, f.Day = SplitReleaseDate(d.Version.ReleaseDate)
	f.ReleaseNote = d.Version.ReleaseNote
	f.ReleaseNoteURL = d.Version.ReleaseNoteURL
	f.JarURL = d.Version.JarURL
	f.SourceURL = d.Version.SourceURL
	f.Reference = d.Version.Reference
	f.Comment = d.Version.Comment
	for _, tag := range strings.Split(d.Version.CyVersions, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.CyVersions[tag] = true
		}
	}
	if len(d.Authors) > 0 {
		f.Authors = f.Authors[:0]
		for _, a := range d.Authors {
			f.Authors = append(f.Authors, Author{
				Name:           a.Name,
				Email:          a.Email,
				Affiliation:    a.Affiliation,
				AffiliationURL: a.AffiliationURL,
			})
		}
	}
	return f
}

// BindRequest overlays the form with every field present in the POST body.
// Fields absent from the submission keep their current value, except the
// compatibility checkboxes, which are rebuilt from scratch on every tried
// submission (an unchecked box is simply not sent by the browser).
// The caller must have parsed the multipart body already.
func (f *Form) BindRequest(r *http.Request) {
	if r.PostFormValue("tried") != "" {
		f.Tried = true
	}
	f.Action = r.PostFormValue("action")

	bind := func(dst *string, key string) {
		if r.PostForm.Has(key) {
			*dst = r.PostForm.Get(key)
		}
	}
	bind(&f.Name, "name")
	bind(&f.Version, "version")
	bind(&f.Description, "description")
	bind(&f.ProjectURL, "projectUrl")
	bind(&f.Category, "category")
	bind(&f.Month, "month")
	bind(&f.Day, "day")
	bind(&f.Year, "year")
	bind(&f.ReleaseNote, "releaseNote")
	bind(&f.ReleaseNoteURL, "releaseNoteUrl")
	bind(&f.JarURL, "jarUrl")
	bind(&f.SourceURL, "sourceUrl")
	bind(&f.Reference, "reference")
	bind(&f.Comment, "comment")
	bind(&f.LicenseBrief, "licenseBrief")
	bind(&f.LicenseDetail, "licenseDetail")

	if f.Tried {
		f.CyVersions = make(map[string]bool)
		for _, tag := range r.PostForm["cyversion"] {
			for _, known := range CompatTags {
				if tag == known {
					f.CyVersions[tag] = true
				}
			}
		}
	}

	f.bindAuthors(r)
	f.bindUpload(r)
}

// bindAuthors reads the indexed author field groups. The form ships a fixed
// number of slots but any contiguous run of indices is accepted.
func (f *Form) bindAuthors(r *http.Request) {
	for i := 0; ; i++ {
		idx := strconv.Itoa(i)
		keys := [4]string{"authorName" + idx, "authorEmail" + idx, "authorAffiliation" + idx, "authorAffiliationUrl" + idx}
		present := false
		for _, k := range keys {
			if r.PostForm.Has(k) {
				present = true
				break
			}
		}
		if !present {
			break
		}
		for len(f.Authors) <= i {
			f.Authors = append(f.Authors, Author{})
		}
		bind := func(dst *string, key string) {
			if r.PostForm.Has(key) {
				*dst = r.PostForm.Get(key)
			}
		}
		bind(&f.Authors[i].Name, keys[0])
		bind(&f.Authors[i].Email, keys[1])
		bind(&f.Authors[i].Affiliation, keys[2])
		bind(&f.Authors[i].AffiliationURL, keys[3])
	}
}

func (f *Form) bindUpload(r *http.Request) {
	if r.MultipartForm == nil {
		return
	}
	headers := r.MultipartForm.File["jarFile"]
	if len(headers) == 0 || headers[0].Filename == "" {
		return
	}
	fh := headers[0]
	src, err := fh.Open()
	if err != nil {
		f.UploadErr = fmt.Errorf("failed to open uploaded file: %w", err)
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		f.UploadErr = fmt.Errorf("failed to read uploaded file: %w", err)
		return
	}
	f.Upload = &Upload{
		FileName: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Content:  content,
	}
}

// SubmittedAuthors returns the author entries to persist: entries with a
// non-empty name, in form order.
func (f *Form) SubmittedAuthors() []models.Author {
	var out []models.Author
	for _, a := range f.Authors {
		if strings.TrimSpace(a.Name) == "" {
			continue
		}
		out = append(out, models.Author{
			Name:           a.Name,
			Email:          a.Email,
			Affiliation:    a.Affiliation,
			AffiliationURL: a.AffiliationURL,
		})
	}
	return out
}

// CyVersionList serializes the checked compatibility flags back to the
// stored comma-separated representation, in tag order.
func (f *Form) CyVersionList() string {
	var tags []string
	for _, tag := range CompatTags {
		if f.CyVersions[tag] {
			tags = append(tags, tag)
		}
	}
	return strings.Join(tags, ",")
}

// ReleaseDate composes the stored YYYY-MM-DD value, or "" when the date
// fields were left empty.
func (f *Form) ReleaseDate() string {
	if f.Month == "" && f.Day == "" && f.Year == "" {
		return ""
	}
	return f.Year + "-" + f.Month + "-" + f.Day
}

// SplitReleaseDate decomposes a stored YYYY-MM-DD release date for form
// pre-population. Missing or malformed values yield empty fields.
func SplitReleaseDate(date string) (year, month, day string) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return "", "", ""
	}
	return parts[0], parts[1], parts[2]
}
