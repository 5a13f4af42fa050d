package core

import (
	"testing"
	"time"

	"github.com/aretw0/reqdoc/pkg/omap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeStampsVersionAndDate(t *testing.T) {
	s := newTestSession(t, `{"metadata": {"version": "2025.3.r4", "dateModified": "2025-02-01"}, "requirements": {}}`)

	data, warnings, err := s.Serialize()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	out := decodeObj(t, string(data))
	assert.Equal(t, "2025.3.r5", GetPath(out, "metadata.version", ""))
	assert.Equal(t, "2025-03-10", GetPath(out, "metadata.dateModified", ""))

	// the live metadata was stamped too
	assert.Equal(t, "2025.3.r5", GetString(s.Document().Metadata(), "version", ""))
	assert.False(t, s.Dirty(), "successful export clears the dirty flag")
}

func TestSerializeNormalizesEveryRequirement(t *testing.T) {
	s := newTestSession(t, `{"metadata": {}, "requirements": {
		"r1": {"title": "T", "metadata": {"mainCategory": "Cat"}, "customField": "x"}
	}}`)

	data, _, err := s.Serialize()
	require.NoError(t, err)
	out := decodeObj(t, string(data))

	rec := GetPath(out, "requirements.r1", nil).(*omap.Map)
	for _, key := range StandardRequirementKeys {
		assert.True(t, rec.Has(key), "serialized record missing %q", key)
	}
	assert.Equal(t, "x", GetString(rec, "customField", ""), "unknown key round-trips")
	assert.Equal(t, "Cat", GetPath(rec, "metadata.mainCategory.text", ""))
}

func TestSerializeSkipsMalformedEntries(t *testing.T) {
	s := newTestSession(t, `{"metadata": {}, "requirements": {
		"good": {"title": "T"},
		"corrupt": "just a string",
		"worse": 42
	}}`)

	data, warnings, err := s.Serialize()
	require.NoError(t, err)
	assert.Len(t, warnings, 2, "one warning per skipped record")

	out := decodeObj(t, string(data))
	reqs := GetPath(out, "requirements", nil).(*omap.Map)
	assert.True(t, reqs.Has("good"))
	assert.False(t, reqs.Has("corrupt"))
	assert.False(t, reqs.Has("worse"))

	// skip-and-warn must not delete the in-memory entry
	assert.True(t, s.Document().Requirements().Has("corrupt"))
}

func TestSerializePreservesUnknownMetadataAndTopLevelKeys(t *testing.T) {
	s := newTestSession(t, `{
		"metadata": {"publisher": "Agency", "keywords": ["a11y"], "version": "x"},
		"requirements": {},
		"$schema": "https://example.org/schema.json"
	}`)

	data, _, err := s.Serialize()
	require.NoError(t, err)
	out := decodeObj(t, string(data))

	assert.Equal(t, "Agency", GetPath(out, "metadata.publisher", ""))
	assert.Equal(t, []any{"a11y"}, GetPath(out, "metadata.keywords", nil))
	schema, _ := out.Get("$schema")
	assert.Equal(t, "https://example.org/schema.json", schema)
}

func TestSerializeRoundTripIsFixedPoint(t *testing.T) {
	s := newTestSession(t, `{"metadata": {}, "requirements": {
		"r1": {"title": "T", "metadata": {"mainCategory": "Cat", "subCategory": {"text": "", "key": ""}},
		       "standardReference": {"text": "", "url": ""},
		       "checks": [{"condition": "", "passCriteria": []}]}
	}}`)

	first, _, err := s.SerializeAt(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	s2 := NewSession()
	_, err = s2.Load(string(first))
	require.NoError(t, err)
	second, _, err := s2.SerializeAt(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// normalization is a fixed point; only the version sequence moves
	a := decodeObj(t, string(first))
	b := decodeObj(t, string(second))
	assert.Equal(t, "2025.3.r1", GetPath(a, "metadata.version", ""))
	assert.Equal(t, "2025.3.r2", GetPath(b, "metadata.version", ""))

	ra := GetPath(a, "requirements.r1", nil).(*omap.Map)
	rb := GetPath(b, "requirements.r1", nil).(*omap.Map)
	aj, err := omap.EncodeJSON(ra)
	require.NoError(t, err)
	bj, err := omap.EncodeJSON(rb)
	require.NoError(t, err)
	assert.Equal(t, string(aj), string(bj))

	sub, _ := GetPath(ra, "metadata.subCategory", nil).(string)
	assert.Equal(t, "", sub)
	ref, _ := ra.Get("standardReference")
	assert.Equal(t, "", ref)
	checks, _ := ra.Get("checks")
	assert.Empty(t, checks, "empty-condition check never reaches output")
}

func TestEndToEndScenario(t *testing.T) {
	s := newTestSession(t, `{"metadata": {}, "requirements": {"r1": {"title": "T", "metadata": {"mainCategory": "Cat"}}}}`)

	assert.Equal(t, "web", GetPath(s.Document().Metadata(), "monitoringType.type", ""))

	rec, err := s.AddRequirement(Draft{Title: "New", MainCategory: "Cat2"})
	require.NoError(t, err)
	assert.Regexp(t, `^new-[0-9a-f]{8}$`, GetString(rec, "key", ""))

	data, warnings, err := s.Serialize()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	reload := NewSession()
	doc, err := reload.Load(string(data))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Requirements().Len())

	for _, key := range doc.Requirements().Keys() {
		raw, _ := doc.Requirements().Get(key)
		for _, std := range StandardRequirementKeys {
			assert.True(t, raw.(*omap.Map).Has(std), "requirement %q missing %q", key, std)
		}
	}
}
