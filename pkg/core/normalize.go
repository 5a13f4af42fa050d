package core

import (
	"strconv"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// NormalizeRequirement coerces one raw requirement record into the
// canonical schema: every standard key present with a defaulted value,
// legacy string-or-object category and reference shapes rebuilt, empty
// checks and criteria pruned, and every non-standard key carried over
// verbatim in source order. Nested values are deep-cloned so the result
// never aliases the source tree.
//
// A value that is not an object cannot be a requirement; the second
// return is false and the entry should be skipped with a warning rather
// than failing the whole save.
func NormalizeRequirement(raw any) (*omap.Map, bool) {
	src, ok := raw.(*omap.Map)
	if !ok || src == nil {
		return nil, false
	}

	out := omap.New()
	for _, key := range StandardRequirementKeys {
		v, present := src.Get(key)
		if !present || v == nil {
			out.Set(key, defaultFor(key))
			continue
		}
		switch key {
		case "metadata":
			out.Set(key, normalizeMetadata(v))
		case "standardReference":
			out.Set(key, normalizeReference(v))
		case "instructions":
			out.Set(key, normalizeInstructions(v))
		case "checks":
			out.Set(key, normalizeChecks(v))
		case "contentType":
			out.Set(key, normalizeContentTypeRefs(v))
		default:
			out.Set(key, omap.CloneValue(v))
		}
	}

	// Forward-compatibility: unknown source keys ride along untouched.
	for _, key := range src.Keys() {
		if out.Has(key) {
			continue
		}
		v, _ := src.Get(key)
		out.Set(key, omap.CloneValue(v))
	}

	return out, true
}

func normalizeMetadata(v any) *omap.Map {
	src, ok := v.(*omap.Map)
	if !ok {
		return defaultRequirementMetadata()
	}

	out := omap.New()
	main, _ := src.Get("mainCategory")
	out.Set("mainCategory", normalizeCategory(main, false))
	sub, _ := src.Get("subCategory")
	out.Set("subCategory", normalizeCategory(sub, true))

	// Field-level fallback: each impact sub-field comes from the source
	// when present, from the default otherwise.
	impactSrc, _ := src.Get("impact")
	impactMap, _ := impactSrc.(*omap.Map)
	impact := omap.New()
	for _, f := range impactFields {
		if fv, ok := impactMap.Get(f.name); ok && fv != nil {
			impact.Set(f.name, omap.CloneValue(fv))
		} else {
			impact.Set(f.name, f.def)
		}
	}
	out.Set("impact", impact)

	for _, key := range src.Keys() {
		if out.Has(key) {
			continue
		}
		fv, _ := src.Get(key)
		out.Set(key, omap.CloneValue(fv))
	}
	return out
}

// normalizeCategory rebuilds a legacy string-or-object category value.
// collapse makes an empty-text object fold back to "" (the canonical
// empty representation for subCategory).
func normalizeCategory(v any, collapse bool) any {
	switch t := v.(type) {
	case string:
		if t == "" {
			return ""
		}
		m := omap.New()
		m.Set("text", t)
		m.Set("key", Slugify(t))
		return m
	case *omap.Map:
		text := GetString(t, "text", "")
		// An explicitly empty key is kept; only an absent or null key
		// falls back to the derived slug.
		key := Slugify(text)
		if v, ok := t.Get("key"); ok && v != nil {
			if s, isStr := v.(string); isStr {
				key = s
			}
		}
		if collapse && text == "" {
			return ""
		}
		m := omap.New()
		m.Set("text", text)
		m.Set("key", key)
		return m
	default:
		return ""
	}
}

func normalizeReference(v any) any {
	switch t := v.(type) {
	case string:
		return t
	case *omap.Map:
		text := GetString(t, "text", "")
		url := GetString(t, "url", "")
		if text == "" && url == "" {
			return ""
		}
		m := omap.New()
		m.Set("text", text)
		m.Set("url", url)
		return m
	default:
		return ""
	}
}

// normalizeInstructions drops empty-text entries and renumbers the rest
// with 1-based positional ids. Bare-string entries are a legacy shape.
func normalizeInstructions(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := []any{}
	for _, raw := range list {
		var text string
		switch t := raw.(type) {
		case string:
			text = t
		case *omap.Map:
			text = GetString(t, "text", "")
		}
		if text == "" {
			continue
		}
		entry := omap.New()
		entry.Set("id", strconv.Itoa(len(out)+1))
		entry.Set("text", text)
		out = append(out, entry)
	}
	return out
}

// normalizeChecks discards any check with an empty condition, forces the
// logic field to AND/OR, and prunes empty criteria from both branches.
func normalizeChecks(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := []any{}
	for _, raw := range list {
		src, ok := raw.(*omap.Map)
		if !ok {
			continue
		}
		condition := GetString(src, "condition", "")
		if condition == "" {
			continue
		}

		check := omap.New()
		id := GetString(src, "id", "")
		if id == "" {
			id = strconv.Itoa(len(out) + 1)
		}
		check.Set("id", id)
		check.Set("condition", condition)
		if GetString(src, "logic", "") == "OR" {
			check.Set("logic", "OR")
		} else {
			check.Set("logic", "AND")
		}
		pass, _ := src.Get("passCriteria")
		check.Set("passCriteria", normalizeCriteria(pass))
		ifNo, _ := src.Get("ifNo")
		check.Set("ifNo", normalizeCriteria(ifNo))
		out = append(out, check)
	}
	return out
}

func normalizeCriteria(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := []any{}
	for _, raw := range list {
		var requirement, failure, id string
		switch t := raw.(type) {
		case string:
			requirement = t
		case *omap.Map:
			requirement = GetString(t, "requirement", "")
			failure = GetString(t, "failureStatementTemplate", "")
			id = GetString(t, "id", "")
		}
		if requirement == "" {
			continue
		}
		if id == "" {
			id = strconv.Itoa(len(out) + 1)
		}
		entry := omap.New()
		entry.Set("id", id)
		entry.Set("requirement", requirement)
		entry.Set("failureStatementTemplate", failure)
		out = append(out, entry)
	}
	return out
}

// normalizeContentTypeRefs keeps only string sub-type IDs. Order from the
// source is preserved; dangling IDs are kept (lazy cleanup is the
// reconciler's call, not the normalizer's).
func normalizeContentTypeRefs(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := []any{}
	for _, raw := range list {
		if id, ok := raw.(string); ok {
			out = append(out, id)
		}
	}
	return out
}
