package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAssociationIdempotent(t *testing.T) {
	s := newTestSession(t, taxonomyDoc)

	changed, err := s.SetAssociation("r2", "video", true)
	require.NoError(t, err)
	assert.True(t, changed)

	// repeated toggle-true is a no-op and never duplicates the id
	changed, err = s.SetAssociation("r2", "video", true)
	require.NoError(t, err)
	assert.False(t, changed)

	rec, _ := s.Requirement("r2")
	v, _ := rec.Get("contentType")
	assert.Equal(t, []any{"tables", "video"}, v)

	changed, err = s.SetAssociation("r2", "video", false)
	require.NoError(t, err)
	assert.True(t, changed)
	rec, _ = s.Requirement("r2")
	v, _ = rec.Get("contentType")
	assert.Equal(t, []any{"tables"}, v)

	changed, err = s.SetAssociation("r2", "video", false)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSetAssociationDirtyPrecision(t *testing.T) {
	s := newTestSession(t, taxonomyDoc)
	require.False(t, s.Dirty())

	_, err := s.SetAssociation("r1", "forms", true) // already associated
	require.NoError(t, err)
	assert.False(t, s.Dirty(), "redundant toggle must not mark dirty")

	_, err = s.SetAssociation("r1", "tables", true)
	require.NoError(t, err)
	assert.True(t, s.Dirty())
}

func TestSetAssociationMissingRequirement(t *testing.T) {
	s := newTestSession(t, taxonomyDoc)
	_, err := s.SetAssociation("ghost", "forms", true)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestBulkReconcile(t *testing.T) {
	s := newTestSession(t, taxonomyDoc)

	// r1 already has "forms"; only r2 changes
	n, err := s.BulkReconcile([]string{"r1", "r2"}, "forms", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.BulkReconcile([]string{"r1", "r2"}, "forms", false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPruneReferencesTo(t *testing.T) {
	s := newTestSession(t, taxonomyDoc)

	n, err := s.PruneReferencesTo("forms")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, _ := s.Requirement("r1")
	v, _ := rec.Get("contentType")
	assert.NotContains(t, v, "forms")

	n, err = s.PruneReferencesTo("forms")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestResolveAssociationsReportsDangling(t *testing.T) {
	s := newTestSession(t, `{"metadata": {
		"contentTypes": [{"id": "c", "text": "C", "types": [{"id": "forms", "text": "Forms"}]}]
	}, "requirements": {
		"r1": {"title": "R", "metadata": {"mainCategory": "Cat"}, "contentType": ["forms", "ghost"]}
	}}`)

	resolved, dangling, err := s.ResolveAssociations("r1")
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Forms", resolved[0].Text)
	assert.Equal(t, []string{"ghost"}, dangling)

	// lazy cleanup: the dangling id stays in storage
	rec, _ := s.Requirement("r1")
	v, _ := rec.Get("contentType")
	assert.Contains(t, v, "ghost")
}

func TestDanglingReferences(t *testing.T) {
	s := newTestSession(t, `{"metadata": {"contentTypes": []}, "requirements": {
		"r1": {"title": "R", "contentType": ["ghost"]},
		"r2": {"title": "S", "contentType": []}
	}}`)

	dangling, err := s.DanglingReferences()
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"r1": {"ghost"}}, dangling)
}
