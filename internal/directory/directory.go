// Package directory holds the in-memory, semester-keyed index of an
// instructor's sections for the lifetime of one workflow session.
package directory

import (
	"fmt"

	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/semester"
)

// Choice is one pickable option presented to the user.
type Choice struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Directory maps semester codes to ordered section buckets. Bucket order is
// LMS return order; a section id appears at most once per bucket. Ids may
// repeat across semesters and are treated as distinct records there.
type Directory struct {
	Buckets map[semester.Code][]models.Section `json:"buckets"`
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{Buckets: make(map[semester.Code][]models.Section)}
}

// BucketFor returns the sections recorded for a semester, in insertion
// order. An unseen semester yields an empty slice, not an error.
func (d *Directory) BucketFor(sem semester.Code) []models.Section {
	return d.Buckets[sem]
}

// HasBucket reports whether any section was recorded for the semester.
func (d *Directory) HasBucket(sem semester.Code) bool {
	return len(d.Buckets[sem]) > 0
}

// Insert appends a section to the semester's bucket. Re-inserting an id
// already present in that bucket is a no-op: the LMS may report the same
// paginated item twice under bookmark retries.
func (d *Directory) Insert(sem semester.Code, section models.Section) {
	if d.Buckets == nil {
		d.Buckets = make(map[semester.Code][]models.Section)
	}
	for _, existing := range d.Buckets[sem] {
		if existing.ID == section.ID {
			return
		}
	}
	d.Buckets[sem] = append(d.Buckets[sem], section)
}

// Find returns the section with the given id in the semester's bucket.
func (d *Directory) Find(sem semester.Code, id int64) (models.Section, bool) {
	for _, section := range d.Buckets[sem] {
		if section.ID == id {
			return section, true
		}
	}
	return models.Section{}, false
}

// ChoicesForSelection lists the semester's sections as checkbox options.
func (d *Directory) ChoicesForSelection(sem semester.Code) []Choice {
	bucket := d.Buckets[sem]
	choices := make([]Choice, 0, len(bucket))
	for _, section := range bucket {
		choices = append(choices, Choice{ID: section.ID, Label: section.Name + ", " + section.Label})
	}
	return choices
}

// ChoicesForBase lists the semester's sections as base-course options whose
// labels deep link into the LMS course-offering page on the given host.
func (d *Directory) ChoicesForBase(sem semester.Code, lmsHost string) []Choice {
	bucket := d.Buckets[sem]
	choices := make([]Choice, 0, len(bucket))
	for _, section := range bucket {
		label := fmt.Sprintf(
			"<a target=\"_blank\" href=\"https://%s/d2l/lp/manageCourses/course_offering_info_viewedit.d2l?ou=%d\">%s, %s</a>",
			lmsHost, section.ID, section.Name, section.Label,
		)
		choices = append(choices, Choice{ID: section.ID, Label: label})
	}
	return choices
}

// Semesters returns every semester code with at least one section.
func (d *Directory) Semesters() []semester.Code {
	codes := make([]semester.Code, 0, len(d.Buckets))
	for code := range d.Buckets {
		codes = append(codes, code)
	}
	return codes
}
