package content

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every FieldError.
var ErrMalformed = errors.New("malformed content document")

// FieldError reports a required field that is missing from the document.
type FieldError struct {
	Path string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: missing required field %q", ErrMalformed, e.Path)
}

func (e *FieldError) Unwrap() error { return ErrMalformed }

// Missing returns a FieldError for path.
func Missing(path string) error {
	return &FieldError{Path: path}
}

// Validate checks every required field and returns all problems joined.
// Rendering stops at the first missing field; Validate is the up-front
// report used by `folio validate`.
func (d *Document) Validate() error {
	var errs []error
	if d.Name == nil {
		errs = append(errs, Missing("name"))
	}
	if d.Tagline == nil {
		errs = append(errs, Missing("tagline"))
	}
	if d.About == nil {
		errs = append(errs, Missing("about"))
	} else {
		if d.About.Heading == nil {
			errs = append(errs, Missing("about.heading"))
		}
		if d.About.Columns == nil {
			errs = append(errs, Missing("about.columns"))
		}
	}
	if d.Skills == nil {
		errs = append(errs, Missing("skills"))
	}
	if d.Experience == nil {
		errs = append(errs, Missing("experience"))
	}
	if d.Education == nil {
		errs = append(errs, Missing("education"))
	}
	if d.Projects == nil {
		errs = append(errs, Missing("projects"))
	}
	for i, p := range d.Projects {
		if p.Tags == nil {
			errs = append(errs, Missing(fmt.Sprintf("projects[%d].tags", i)))
		}
	}
	if d.Contact == nil {
		errs = append(errs, Missing("contact"))
	} else {
		if d.Contact.Heading == nil {
			errs = append(errs, Missing("contact.heading"))
		}
		if d.Contact.Links == nil {
			errs = append(errs, Missing("contact.links"))
		}
	}
	return errors.Join(errs...)
}
