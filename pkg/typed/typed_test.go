package typed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/reqdoc/pkg/omap"
)

type reqView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Meta  struct {
		Impact struct {
			IsCritical   bool    `json:"isCritical"`
			PrimaryScore float64 `json:"primaryScore"`
		} `json:"impact"`
	} `json:"metadata"`
	ContentType []string `json:"contentType"`
}

func sampleRecord(t *testing.T) *omap.Map {
	t.Helper()
	v, err := omap.DecodeJSON([]byte(`{
		"id": "abc", "title": "T",
		"metadata": {"impact": {"isCritical": true, "primaryScore": 3}},
		"contentType": ["forms"],
		"customField": "hidden from the view"
	}`))
	require.NoError(t, err)
	return v.(*omap.Map)
}

func TestDecode(t *testing.T) {
	view, err := Decode[reqView](sampleRecord(t))
	require.NoError(t, err)

	assert.Equal(t, "abc", view.ID)
	assert.Equal(t, "T", view.Title)
	assert.True(t, view.Meta.Impact.IsCritical)
	assert.Equal(t, 3.0, view.Meta.Impact.PrimaryScore)
	assert.Equal(t, []string{"forms"}, view.ContentType)
}

func TestEncode(t *testing.T) {
	view, err := Decode[reqView](sampleRecord(t))
	require.NoError(t, err)

	rec, err := Encode(view)
	require.NoError(t, err)
	title, _ := rec.Get("title")
	assert.Equal(t, "T", title)
	assert.False(t, rec.Has("customField"), "typed encode only carries the view's fields")
}

func TestEncodeNonObject(t *testing.T) {
	_, err := Encode("just a string")
	assert.Error(t, err)
}

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord[reqView]("some-key", sampleRecord(t))
	require.NoError(t, err)
	assert.Equal(t, "some-key", rec.Key)
	assert.Equal(t, "abc", rec.Data.ID)
}
