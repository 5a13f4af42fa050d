package core

import (
	"strconv"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// StandardRequirementKeys is the closed list of fields every serialized
// requirement record carries, in canonical emission order. Normalization
// guarantees each of them is present with a non-nil value.
var StandardRequirementKeys = []string{
	"id",
	"key",
	"title",
	"metadata",
	"standardReference",
	"instructions",
	"checks",
	"exceptions",
	"examples",
	"tips",
	"commonErrors",
	"expectedObservation",
	"contentType",
}

// defaultFor returns a fresh default value for a standard requirement key.
// Always a new copy, never shared state.
func defaultFor(key string) any {
	switch key {
	case "metadata":
		return defaultRequirementMetadata()
	case "instructions", "checks", "contentType":
		return []any{}
	default:
		// id, key, title, standardReference and the free-text fields
		return ""
	}
}

func defaultRequirementMetadata() *omap.Map {
	m := omap.New()
	m.Set("mainCategory", "")
	m.Set("subCategory", "")
	m.Set("impact", defaultImpact())
	return m
}

func defaultImpact() *omap.Map {
	m := omap.New()
	m.Set("isCritical", false)
	m.Set("primaryScore", 0)
	m.Set("secondaryScore", 0)
	m.Set("assumedCompliance", false)
	return m
}

// impactFields pairs each impact sub-field with its default, for the
// field-level fallback normalization of the impact record.
var impactFields = []struct {
	name string
	def  any
}{
	{"isCritical", false},
	{"primaryScore", 0},
	{"secondaryScore", 0},
	{"assumedCompliance", false},
}

// categoryValue builds the canonical category shape from plain text:
// empty text stays the empty string, anything else becomes {text, key}.
func categoryValue(text string) any {
	if text == "" {
		return ""
	}
	m := omap.New()
	m.Set("text", text)
	m.Set("key", Slugify(text))
	return m
}

// referenceValue collapses an empty reference to "" per the wire contract.
func referenceValue(ref Reference) any {
	if ref.Text == "" && ref.URL == "" {
		return ""
	}
	m := omap.New()
	m.Set("text", ref.Text)
	m.Set("url", ref.URL)
	return m
}

// buildRequirement assembles the canonical record for a freshly authored
// draft. Drafts never carry legacy shapes, so no coercion happens here;
// pruning of empty instructions, checks and criteria still applies.
func buildRequirement(id, key string, d Draft) *omap.Map {
	rec := omap.New()
	rec.Set("id", id)
	rec.Set("key", key)
	rec.Set("title", d.Title)

	meta := omap.New()
	meta.Set("mainCategory", categoryValue(d.MainCategory))
	meta.Set("subCategory", categoryValue(d.SubCategory))
	impact := omap.New()
	impact.Set("isCritical", d.Impact.IsCritical)
	impact.Set("primaryScore", d.Impact.PrimaryScore)
	impact.Set("secondaryScore", d.Impact.SecondaryScore)
	impact.Set("assumedCompliance", d.Impact.AssumedCompliance)
	meta.Set("impact", impact)
	rec.Set("metadata", meta)

	rec.Set("standardReference", referenceValue(d.StandardReference))

	instructions := []any{}
	for _, text := range d.Instructions {
		if text == "" {
			continue
		}
		entry := omap.New()
		entry.Set("id", strconv.Itoa(len(instructions)+1))
		entry.Set("text", text)
		instructions = append(instructions, entry)
	}
	rec.Set("instructions", instructions)

	checks := []any{}
	for _, c := range d.Checks {
		if c.Condition == "" {
			continue
		}
		checks = append(checks, buildCheck(strconv.Itoa(len(checks)+1), c))
	}
	rec.Set("checks", checks)

	rec.Set("exceptions", d.Exceptions)
	rec.Set("examples", d.Examples)
	rec.Set("tips", d.Tips)
	rec.Set("commonErrors", d.CommonErrors)
	rec.Set("expectedObservation", d.ExpectedObservation)

	contentTypes := []any{}
	for _, id := range d.ContentTypes {
		contentTypes = append(contentTypes, id)
	}
	rec.Set("contentType", contentTypes)

	return rec
}

func buildCheck(id string, c Check) *omap.Map {
	m := omap.New()
	m.Set("id", id)
	m.Set("condition", c.Condition)
	if c.Logic == "OR" {
		m.Set("logic", "OR")
	} else {
		m.Set("logic", "AND")
	}
	m.Set("passCriteria", buildCriteria(c.PassCriteria))
	m.Set("ifNo", buildCriteria(c.IfNo))
	return m
}

func buildCriteria(list []Criterion) []any {
	out := []any{}
	for _, c := range list {
		if c.Requirement == "" {
			continue
		}
		m := omap.New()
		m.Set("id", strconv.Itoa(len(out)+1))
		m.Set("requirement", c.Requirement)
		m.Set("failureStatementTemplate", c.FailureStatementTemplate)
		out = append(out, m)
	}
	return out
}
