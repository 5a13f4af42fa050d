package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedIDs returns an IDSource yielding deterministic sequential UUIDs.
func fixedIDs() IDSource {
	n := 0
	return func() string {
		n++
		return strings.Repeat("0", 7) + string(rune('0'+n)) + "-0000-4000-8000-000000000000"
	}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestSession(t *testing.T, raw string) *Session {
	t.Helper()
	s := NewSession(
		WithIDSource(fixedIDs()),
		WithClock(fixedClock(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))),
	)
	_, err := s.Load(raw)
	require.NoError(t, err)
	return s
}

const minimalDoc = `{"metadata": {}, "requirements": {}}`

func TestLoadRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{`},
		{"not an object", `[1, 2]`},
		{"scalar", `"hello"`},
		{"missing metadata", `{"requirements": {}}`},
		{"missing requirements", `{"metadata": {}}`},
		{"metadata not object", `{"metadata": [], "requirements": {}}`},
		{"requirements not object", `{"metadata": {}, "requirements": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			_, err := s.Load(tt.raw)
			var pe *ParseError
			assert.ErrorAs(t, err, &pe)
			assert.Nil(t, s.Document(), "no partial document after failed load")
		})
	}
}

func TestLoadInjectsMonitoringTypeDefault(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	meta := s.Document().Metadata()
	assert.Equal(t, "web", GetPath(meta, "monitoringType.type", ""))
	assert.Equal(t, "Website", GetPath(meta, "monitoringType.label", ""))
	assert.False(t, s.Dirty(), "freshly loaded document is clean")
}

func TestLoadKeepsExistingMonitoringType(t *testing.T) {
	s := newTestSession(t, `{"metadata": {"monitoringType": {"type": "app", "label": "Mobile application"}}, "requirements": {}}`)
	assert.Equal(t, "app", GetPath(s.Document().Metadata(), "monitoringType.type", ""))
}

func TestAddRequirement(t *testing.T) {
	s := newTestSession(t, minimalDoc)

	rec, err := s.AddRequirement(Draft{Title: "New Requirement", MainCategory: "Forms"})
	require.NoError(t, err)

	key := GetString(rec, "key", "")
	assert.Equal(t, "new-requirement-00000001", key)
	assert.True(t, s.Document().Requirements().Has(key))
	assert.True(t, s.Dirty())
	assert.Equal(t, key, s.LastFocused())
	assert.Equal(t, "Forms", GetPath(rec, "metadata.mainCategory.text", ""))
	assert.Equal(t, "forms", GetPath(rec, "metadata.mainCategory.key", ""))

	sub, _ := GetPath(rec, "metadata.subCategory", nil).(string)
	assert.Equal(t, "", sub, "absent subCategory is the empty string")
}

func TestAddRequirementCollectsAllViolations(t *testing.T) {
	s := newTestSession(t, minimalDoc)

	_, err := s.AddRequirement(Draft{
		Checks: []Check{{Condition: "", PassCriteria: []Criterion{{Requirement: "x"}}}},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 3)
	assert.False(t, s.Dirty(), "failed validation must not mutate")
}

func TestAddRequirementRequiresMainCategory(t *testing.T) {
	s := newTestSession(t, minimalDoc)

	_, err := s.AddRequirement(Draft{Title: "Placeholder requirement"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"main category must not be empty"}, ve.Violations)
	assert.Equal(t, 0, s.Document().Requirements().Len(), "rejected draft must not be inserted")
}

func TestUpdateRequirementNoOpKeepsClean(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	draft := Draft{Title: "Stable", MainCategory: "Forms", Tips: "tip"}
	rec, err := s.AddRequirement(draft)
	require.NoError(t, err)
	key := GetString(rec, "key", "")

	// simulate a save so the flag is clean again
	_, _, err = s.Serialize()
	require.NoError(t, err)
	require.False(t, s.Dirty())

	_, err = s.UpdateRequirement(key, draft)
	require.NoError(t, err)
	assert.False(t, s.Dirty(), "identical edit must not flip the dirty flag")

	_, err = s.UpdateRequirement(key, Draft{Title: "Stable", MainCategory: "Forms", Tips: "other"})
	require.NoError(t, err)
	assert.True(t, s.Dirty())
}

func TestUpdateRequirementRenames(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	rec, err := s.AddRequirement(Draft{Title: "Old Title", MainCategory: "Forms"})
	require.NoError(t, err)
	oldKey := GetString(rec, "key", "")
	id := GetString(rec, "id", "")

	updated, err := s.UpdateRequirement(oldKey, Draft{Title: "New Title", MainCategory: "Forms"})
	require.NoError(t, err)
	newKey := GetString(updated, "key", "")

	assert.NotEqual(t, oldKey, newKey)
	assert.False(t, s.Document().Requirements().Has(oldKey), "old key removed on rename")
	assert.True(t, s.Document().Requirements().Has(newKey))
	assert.Equal(t, id, GetString(updated, "id", ""), "id stable across edits")
	assert.Equal(t, newKey, s.LastFocused(), "focus follows the rename")
}

func TestUpdateRequirementPreservesUnknownKeys(t *testing.T) {
	s := newTestSession(t, `{"metadata": {}, "requirements": {
		"r1": {"id": "abc", "title": "T", "metadata": {"mainCategory": "Cat"}, "customField": "x"}
	}}`)

	updated, err := s.UpdateRequirement("r1", Draft{Title: "T2", MainCategory: "Cat"})
	require.NoError(t, err)
	assert.Equal(t, "x", GetString(updated, "customField", ""))
}

func TestUpdateMissingRequirement(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	_, err := s.UpdateRequirement("ghost", Draft{Title: "T", MainCategory: "C"})
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteRequirement(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	rec, err := s.AddRequirement(Draft{Title: "Doomed", MainCategory: "Forms"})
	require.NoError(t, err)
	key := GetString(rec, "key", "")

	require.NoError(t, s.DeleteRequirement(key))
	assert.False(t, s.Document().Requirements().Has(key))
	assert.Empty(t, s.LastFocused(), "focus cleared when its target is deleted")

	err = s.DeleteRequirement(key)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestOperationsBeforeLoad(t *testing.T) {
	s := NewSession()
	_, err := s.AddRequirement(Draft{Title: "T", MainCategory: "C"})
	assert.True(t, errors.Is(err, ErrNoDocument))
	assert.Nil(t, s.Keys())
}

func TestSetMonitoringType(t *testing.T) {
	s := newTestSession(t, minimalDoc)

	require.NoError(t, s.SetMonitoringType("app"))
	assert.Equal(t, "app", GetPath(s.Document().Metadata(), "monitoringType.type", ""))
	assert.Equal(t, "Mobile application", GetPath(s.Document().Metadata(), "monitoringType.label", ""))
	assert.True(t, s.Dirty())

	_, _, err := s.Serialize()
	require.NoError(t, err)
	require.NoError(t, s.SetMonitoringType("app"))
	assert.False(t, s.Dirty(), "setting the current value is a no-op")

	err = s.SetMonitoringType("desktop")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestKeysSortOrders(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	_, err := s.AddRequirement(Draft{Title: "Bravo", MainCategory: "Zulu"})
	require.NoError(t, err)
	_, err = s.AddRequirement(Draft{Title: "Alpha", MainCategory: "Mike"})
	require.NoError(t, err)
	_, err = s.AddRequirement(Draft{Title: "Charlie", MainCategory: "Mike"})
	require.NoError(t, err)

	titles := func(keys []string) []string {
		var out []string
		for _, k := range keys {
			rec, err := s.Requirement(k)
			require.NoError(t, err)
			out = append(out, GetString(rec, "title", ""))
		}
		return out
	}

	s.SetSortOrder(SortByTitle)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, titles(s.Keys()))

	s.SetSortOrder(SortByCategory)
	assert.Equal(t, []string{"Alpha", "Charlie", "Bravo"}, titles(s.Keys()))

	s.SetSortOrder(SortByKey)
	keys := s.Keys()
	assert.True(t, keys[0] < keys[1] && keys[1] < keys[2])
}

func TestFind(t *testing.T) {
	s := newTestSession(t, minimalDoc)
	_, err := s.AddRequirement(Draft{Title: "Cookie Banner", MainCategory: "Privacy"})
	require.NoError(t, err)
	_, err = s.AddRequirement(Draft{Title: "Focus Order", MainCategory: "Keyboard"})
	require.NoError(t, err)

	hits := s.Find("cookie")
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0], "cookie-banner")

	assert.Len(t, s.Find(""), 2, "empty needle matches everything")
	assert.Empty(t, s.Find("zebra"))
}
