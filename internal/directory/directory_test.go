package directory

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/internal/models"
)

func section(id int64, name, code, label string) models.Section {
	return models.Section{ID: id, Name: name, Code: code, Label: label}
}

func TestInsertIsIdempotentPerBucket(t *testing.T) {
	d := New()

	d.Insert("0790", section(7, "Intro CS", "UWOSH_0790_14W_CS_101_SEC1_11111", "CS 101 SEC1"))
	d.Insert("0790", section(7, "Intro CS", "UWOSH_0790_14W_CS_101_SEC1_11111", "CS 101 SEC1"))
	d.Insert("0790", section(9, "Data Structures", "UWOSH_0790_14W_CS_201_SEC1_22222", "CS 201 SEC1"))

	bucket := d.BucketFor("0790")
	require.Len(t, bucket, 2)
	assert.Equal(t, int64(7), bucket[0].ID)
	assert.Equal(t, int64(9), bucket[1].ID)
}

func TestIdsMayRepeatAcrossSemesters(t *testing.T) {
	d := New()

	d.Insert("0790", section(7, "Intro CS", "code-a", "CS 101 SEC1"))
	d.Insert("0795", section(7, "Intro CS", "code-b", "CS 101 SEC1"))

	assert.Len(t, d.BucketFor("0790"), 1)
	assert.Len(t, d.BucketFor("0795"), 1)
}

func TestBucketForUnseenSemester(t *testing.T) {
	d := New()
	assert.Empty(t, d.BucketFor("0000"))
	assert.False(t, d.HasBucket("0000"))
}

func TestFind(t *testing.T) {
	d := New()
	d.Insert("0790", section(7, "Intro CS", "code-a", "CS 101 SEC1"))

	found, ok := d.Find("0790", 7)
	require.True(t, ok)
	assert.Equal(t, "Intro CS", found.Name)

	_, ok = d.Find("0790", 8)
	assert.False(t, ok)
	_, ok = d.Find("0795", 7)
	assert.False(t, ok)
}

func TestChoicesPreserveBucketOrder(t *testing.T) {
	d := New()
	d.Insert("0790", section(7, "Intro CS", "code-a", "CS 101 SEC1"))
	d.Insert("0790", section(9, "Data Structures", "code-b", "CS 201 SEC1"))

	selection := d.ChoicesForSelection("0790")
	require.Len(t, selection, 2)
	assert.Equal(t, int64(7), selection[0].ID)
	assert.Equal(t, "Intro CS, CS 101 SEC1", selection[0].Label)

	base := d.ChoicesForBase("0790", "lms.example.edu")
	require.Len(t, base, 2)
	assert.Equal(t, int64(7), base[0].ID)
	assert.Contains(t, base[0].Label, "lms.example.edu")
	assert.Contains(t, base[0].Label, "ou=7")
	assert.Contains(t, base[0].Label, "Intro CS, CS 101 SEC1")
}

func TestDirectorySurvivesJSONRoundTrip(t *testing.T) {
	d := New()
	d.Insert("0790", section(7, "Intro CS", "code-a", "CS 101 SEC1"))

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	restored := New()
	require.NoError(t, json.Unmarshal(raw, restored))

	bucket := restored.BucketFor("0790")
	require.Len(t, bucket, 1)
	assert.Equal(t, int64(7), bucket[0].ID)

	// The restored directory keeps enforcing the per-bucket invariant.
	restored.Insert("0790", section(7, "Intro CS", "code-a", "CS 101 SEC1"))
	assert.Len(t, restored.BucketFor("0790"), 1)
}
