// Package semester implements the institutional semester-code scheme: a
// 4-digit key derived from a term and year, embedded at a fixed position
// inside org-unit codes.
package semester

import (
	"strconv"
	"strings"

	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

// Code is a semester key: exactly 4 characters, all digits.
type Code string

// Term is one of the three institutional terms.
type Term string

const (
	TermFall   Term = "Fall"
	TermSpring Term = "Spring"
	TermSummer Term = "Summer"
)

// ParseTerm validates a user-supplied term name.
func ParseTerm(raw string) (Term, error) {
	switch Term(raw) {
	case TermFall, TermSpring, TermSummer:
		return Term(raw), nil
	}
	return "", appErrors.Clone(appErrors.ErrValidation, "term must be Fall, Spring or Summer")
}

const (
	codeWidth = 4
	delimiter = "_"
	// Position of the semester key inside an org-unit code, e.g.
	// UWOSH_0245_14W_CS_101_SEC1_12345 carries "0245" at offset 6.
	keyOffset = 6
	minFields = 6

	sectionPrefix = "SEC"
)

// Codec converts between (term, year) pairs, semester codes and the
// composite org-unit code format.
type Codec struct {
	institutionTag string
	baseYear       int
	termDigits     map[Term]string
}

// NewCodec builds a Codec from the institutional configuration.
func NewCodec(cfg config.SemesterConfig) *Codec {
	return &Codec{
		institutionTag: cfg.InstitutionTag,
		baseYear:       cfg.BaseYear,
		termDigits: map[Term]string{
			TermFall:   cfg.FallDigit,
			TermSpring: cfg.SpringDigit,
			TermSummer: cfg.SummerDigit,
		},
	}
}

// Encode derives the semester code for a term and calendar year. Spring and
// Summer close out the academic year that started the prior fall, so they
// encode against year-1. Years whose offset from the base year does not fit
// in three digits cannot be represented in a 4-character code.
func (c *Codec) Encode(term Term, year int) (Code, error) {
	digit, ok := c.termDigits[term]
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown term")
	}

	yearInput := year
	if term != TermFall {
		yearInput = year - 1
	}

	portion := yearInput - c.baseYear
	if portion < 0 || portion > 999 {
		return "", appErrors.Clone(appErrors.ErrMalformedCode, "year is outside the representable semester-code range")
	}

	code := strconv.Itoa(portion) + digit
	for len(code) < codeWidth {
		code = "0" + code
	}
	return Code(code), nil
}

// DeriveKey extracts the semester code embedded in an org-unit code.
// The second return is false for codes that are too short or whose key
// position is not all digits; such items are skipped during aggregation.
func DeriveKey(sectionCode string) (Code, bool) {
	if len(sectionCode) < keyOffset+codeWidth {
		return "", false
	}
	key := sectionCode[keyOffset : keyOffset+codeWidth]
	for _, r := range key {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return Code(key), true
}

// ParseDisplayLabel renders the human-readable subject, catalog number and
// section fields of an org-unit code, e.g. "CS 101 SEC1".
func ParseDisplayLabel(sectionCode string) (string, error) {
	fields := strings.Split(sectionCode, delimiter)
	if len(fields) < minFields {
		return "", appErrors.Clone(appErrors.ErrMalformedCode, "course code has too few fields")
	}
	return strings.Join(fields[3:6], " "), nil
}

// BuildSectionCode composes an org-unit code from its parts. Inputs are not
// validated here; the LMS lookup decides whether the code names a real
// section.
func (c *Codec) BuildSectionCode(sem Code, sessionLength, subject, catalogNumber, sectionDigits, classNumber string) string {
	return strings.Join([]string{
		c.institutionTag,
		string(sem),
		sessionLength,
		subject,
		catalogNumber,
		sectionPrefix + sectionDigits,
		classNumber,
	}, delimiter)
}
