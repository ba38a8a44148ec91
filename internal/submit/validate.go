package submit

import (
	"context"

	"github.com/cytoscape/cyweb/internal/models"
)

// Validate applies the static form rules and returns every violation, not
// just the first one, so the user can fix the whole form in one pass. The
// duplicate-version check is storage-backed and handled by the caller.
func (f *Form) Validate(ctx context.Context) []string {
	var errs []string

	if f.Name == "" {
		errs = append(errs, "Plugin name is a required field.")
	}
	if f.Version == "" {
		errs = append(errs, "Version is a required field.")
	}
	if f.Description == "" {
		errs = append(errs, "Description is a required field.")
	}
	if f.Category == "" || f.Category == models.CategoryPlaceholder {
		errs = append(errs, "Category is a required field.")
	}

	// The release date is optional as a whole: all three fields empty is
	// fine, anything else requires all three. The checks are syntactic
	// only; a month of "13" passes.
	if !(f.Month == "" && f.Day == "" && f.Year == "") {
		if !isDigits(f.Month) || len(f.Month) < 1 || len(f.Month) > 2 {
			errs = append(errs, "Invalid release month.")
		}
		if !isDigits(f.Day) || len(f.Day) < 1 || len(f.Day) > 2 {
			errs = append(errs, "Invalid release day.")
		}
		if !isDigits(f.Year) || len(f.Year) != 4 {
			errs = append(errs, "Invalid release year.")
		}
	}

	if f.UploadErr != nil {
		errs = append(errs, "The uploaded jar file could not be read. Please try again.")
	}
	if f.UploadErr == nil && f.JarURL == "" && (f.Upload == nil || f.Upload.FileName == "") {
		errs = append(errs, "Either a jar URL or a jar file must be supplied.")
	}

	if f.Upload != nil && f.Upload.FileName != "" {
		if _, err := InspectJar(ctx, f.Upload.Content); err != nil {
			errs = append(errs, "The uploaded file is not a readable jar archive.")
		}
	}

	return errs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
