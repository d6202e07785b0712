package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/internal/lms"
	"github.com/uwosh/course-combine-api/internal/semester"
	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

type mockFinder struct {
	units    []lms.OrgUnit
	err      error
	lastCode string
}

func (m *mockFinder) FindOrgUnitByCode(_ context.Context, code string) ([]lms.OrgUnit, error) {
	m.lastCode = code
	return m.units, m.err
}

func lookupCodec() *semester.Codec {
	return semester.NewCodec(config.SemesterConfig{
		InstitutionTag: "UWOSH",
		BaseYear:       1945,
		FallDigit:      "0",
		SpringDigit:    "5",
		SummerDigit:    "8",
	})
}

func validFields() SectionFields {
	return SectionFields{
		SessionLength: "14W",
		Subject:       "CS",
		CatalogNumber: "101",
		Section:       "1",
		ClassNumber:   "12345",
	}
}

func TestResolveComposesCodeAndMapsSection(t *testing.T) {
	finder := &mockFinder{
		units: []lms.OrgUnit{{ID: 7, Name: "Intro CS", Code: "UWOSH_0790_14W_CS_101_SEC1_12345"}},
	}
	svc := NewSectionLookupService(lookupCodec(), finder, nil, nil, nil)

	section, err := svc.Resolve(context.Background(), validFields(), "0790")
	require.NoError(t, err)

	assert.Equal(t, "UWOSH_0790_14W_CS_101_SEC1_12345", finder.lastCode)
	assert.Equal(t, int64(7), section.ID)
	assert.Equal(t, "Intro CS", section.Name)
	assert.Equal(t, "CS 101 SEC1", section.Label)
}

func TestResolveNotFound(t *testing.T) {
	svc := NewSectionLookupService(lookupCodec(), &mockFinder{}, nil, nil, nil)

	_, err := svc.Resolve(context.Background(), validFields(), "0790")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidSectionDetails))
}

func TestResolveRemoteFailure(t *testing.T) {
	finder := &mockFinder{err: appErrors.ErrRemoteFetch}
	svc := NewSectionLookupService(lookupCodec(), finder, nil, nil, nil)

	_, err := svc.Resolve(context.Background(), validFields(), "0790")
	assert.True(t, appErrors.Is(err, appErrors.ErrRemoteFetch))
}

func TestResolveRejectsInvalidFields(t *testing.T) {
	finder := &mockFinder{}
	svc := NewSectionLookupService(lookupCodec(), finder, nil, nil, nil)

	fields := validFields()
	fields.ClassNumber = "not-a-number"

	_, err := svc.Resolve(context.Background(), fields, "0790")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidSectionDetails))
	assert.Empty(t, finder.lastCode, "the LMS must not be queried for invalid fields")
}
