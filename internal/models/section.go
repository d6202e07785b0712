package models

import "github.com/uwosh/course-combine-api/internal/semester"

// Section is one scheduled course offering within a semester, as reported
// by the LMS. Immutable once created.
type Section struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Requester identifies the signed-in instructor asking for a combine.
type Requester struct {
	UserID     string `json:"user_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	UniqueName string `json:"unique_name"`
}

// Selection is the finished combination request: the sections to fold into
// the base section. MergeSet is Chosen plus the base when the base was not
// already among the chosen sections; membership is judged by section id.
type Selection struct {
	Semester semester.Code `json:"semester"`
	Chosen   []Section     `json:"chosen_sections"`
	Base     Section       `json:"base_section"`
	MergeSet []Section     `json:"merge_set"`
}

// BaseInChosen reports whether the base section is already one of the
// chosen sections, compared by id.
func (s *Selection) BaseInChosen() bool {
	for _, sec := range s.Chosen {
		if sec.ID == s.Base.ID {
			return true
		}
	}
	return false
}
