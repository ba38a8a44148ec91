package api

// Handlers for the plugin submission form. One endpoint serves two modes:
// anonymous users submitting a new plugin version, and staff editing an
// existing entry (selected by a version identifier and gated by a session).

import (
	"errors"
	"log"
	"net/http"

	"github.com/cytoscape/cyweb/internal/models"
	"github.com/cytoscape/cyweb/internal/store"
	"github.com/cytoscape/cyweb/internal/submit"
)

const (
	titleNew  = "Submit plugin to Cytoscape"
	titleEdit = "Edit plugin in the plugin database"

	duplicateVersionMessage = "This version of the plugin has already been submitted."
)

// submitPageData feeds the submit form template.
type submitPageData struct {
	Title      string
	Edit       bool
	VersionID  int64
	Form       *submit.Form
	Errors     []string
	Categories []string
	CompatTags []string
}

func (s *Server) renderSubmitPage(w http.ResponseWriter, mode submit.Mode, form *submit.Form, errs []string) {
	categories := []string{models.CategoryPlaceholder}
	stored, err := s.store.ListCategories()
	if err != nil {
		log.Printf("Error loading categories: %v", err)
		s.renderError(w, http.StatusInternalServerError, "A storage error occurred. Please try again later.")
		return
	}
	for _, c := range stored {
		categories = append(categories, c.Name)
	}

	title := titleNew
	if mode.Edit {
		title = titleEdit
	}
	s.renderPage(w, http.StatusOK, "submit.html", submitPageData{
		Title:      title,
		Edit:       mode.Edit,
		VersionID:  mode.VersionID,
		Form:       form,
		Errors:     errs,
		Categories: categories,
		CompatTags: submit.CompatTags,
	})
}

// handleSubmitForm renders the empty form (new mode) or the form
// pre-populated from the stored version (edit mode, staff only).
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	mode := submit.ResolveMode(r)
	form := submit.NewForm()

	if mode.Edit {
		if s.staffFromRequest(r) == nil {
			s.renderError(w, http.StatusUnauthorized, "Staff login is required to edit plugin entries.")
			return
		}
		detail, err := s.store.GetVersionDetail(mode.VersionID)
		if errors.Is(err, store.ErrNotFound) {
			s.renderError(w, http.StatusNotFound, "No plugin version with that identifier exists.")
			return
		}
		if err != nil {
			log.Printf("Error loading version %d for edit: %v", mode.VersionID, err)
			s.renderError(w, http.StatusInternalServerError, "A storage error occurred. Please try again later.")
			return
		}
		form = submit.FromVersionDetail(detail)
	}

	s.renderSubmitPage(w, mode, form, nil)
}

// handleSubmitPost processes a form submission in either mode. Validation
// failures re-render the form with the submitted values preserved and every
// violation listed above it.
func (s *Server) handleSubmitPost(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.app.Config().Upload.MaxMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.renderError(w, http.StatusBadRequest, "Could not parse the submitted form. The upload may exceed the size limit.")
		return
	}

	mode := submit.ResolveMode(r)
	if mode.Edit && s.staffFromRequest(r) == nil {
		s.renderError(w, http.StatusUnauthorized, "Staff login is required to edit plugin entries.")
		return
	}

	// Form state is rebuilt from the POST alone: fields the browser did not
	// resend are treated as empty, not as unchanged.
	form := submit.NewForm()
	form.BindRequest(r)

	if !form.Tried {
		s.renderSubmitPage(w, mode, form, nil)
		return
	}

	errs := form.Validate(r.Context())
	if len(errs) == 0 && !mode.Edit {
		// Fast duplicate hint; the UNIQUE constraint below remains the
		// authoritative check.
		exists, err := s.store.VersionExists(form.Category, form.Name, form.Version)
		if err != nil {
			log.Printf("Error checking for duplicate version: %v", err)
			s.renderError(w, http.StatusInternalServerError, "A storage error occurred. Please try again later.")
			return
		}
		if exists {
			errs = append(errs, duplicateVersionMessage)
		}
	}
	if len(errs) > 0 {
		s.renderSubmitPage(w, mode, form, errs)
		return
	}

	if mode.Edit {
		s.commitEdit(w, mode, form)
		return
	}
	s.commitNew(w, form)
}

// commitEdit applies one of the three staff actions. Only the status column
// is updated; the rest of the form is collected but deliberately not saved.
func (s *Server) commitEdit(w http.ResponseWriter, mode submit.Mode, form *submit.Form) {
	var status string
	switch form.Action {
	case submit.ActionPublish:
		status = models.StatusPublished
	case submit.ActionUnpublish:
		status = models.StatusNew
	case submit.ActionSave, "":
		// Save keeps the current status.
	default:
		s.renderError(w, http.StatusBadRequest, "Unknown edit action.")
		return
	}

	if status != "" {
		err := s.store.UpdateVersionStatus(mode.VersionID, status)
		if errors.Is(err, store.ErrNotFound) {
			s.renderError(w, http.StatusNotFound, "No plugin version with that identifier exists.")
			return
		}
		if err != nil {
			log.Printf("Error updating status of version %d: %v", mode.VersionID, err)
			s.renderError(w, http.StatusInternalServerError, "A storage error occurred. Please try again later.")
			return
		}
	}

	s.renderPage(w, http.StatusOK, "submit_result.html", map[string]interface{}{
		"Title":    titleEdit,
		"Messages": []string{"The plugin status has been updated."},
	})
}

// commitNew persists a validated submission and shows the confirmation page.
func (s *Server) commitNew(w http.ResponseWriter, form *submit.Form) {
	sub := &store.Submission{
		Name:           form.Name,
		Description:    form.Description,
		LicenseBrief:   form.LicenseBrief,
		LicenseDetail:  form.LicenseDetail,
		ProjectURL:     form.ProjectURL,
		Category:       form.Category,
		Version:        form.Version,
		ReleaseDate:    form.ReleaseDate(),
		ReleaseNote:    form.ReleaseNote,
		ReleaseNoteURL: form.ReleaseNoteURL,
		Comment:        form.Comment,
		JarURL:         form.JarURL,
		SourceURL:      form.SourceURL,
		CyVersions:     form.CyVersionList(),
		Reference:      form.Reference,
		Authors:        form.SubmittedAuthors(),
	}
	if form.Upload != nil {
		sub.File = &models.PluginFile{
			FileName: form.Upload.FileName,
			MimeType: form.Upload.MimeType,
			Content:  form.Upload.Content,
		}
	}

	result, err := s.store.CreateSubmission(sub)
	if errors.Is(err, store.ErrDuplicateVersion) {
		s.renderSubmitPage(w, submit.Mode{}, form, []string{duplicateVersionMessage})
		return
	}
	if err != nil {
		log.Printf("Error persisting submission of %q %s: %v", form.Name, form.Version, err)
		s.renderError(w, http.StatusInternalServerError, "The submission could not be saved. Please try again later.")
		return
	}

	messages := []string{}
	if sub.File != nil {
		messages = append(messages, "File uploaded successfully.")
	}
	messages = append(messages,
		"Thank you for submitting your plugin to Cytoscape. "+
			"Cytoscape staff will review the data and publish it on the Cytoscape website. "+
			"If there are any questions, you will be contacted via e-mail.")

	log.Printf("New submission stored: plugin=%d version=%d", result.PluginID, result.VersionID)
	s.renderPage(w, http.StatusOK, "submit_result.html", map[string]interface{}{
		"Title":    titleNew,
		"Messages": messages,
	})
}
