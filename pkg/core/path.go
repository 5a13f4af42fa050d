package core

import (
	"strings"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// GetPath walks obj along a dotted path ("metadata.mainCategory.text") and
// returns the value found, or fallback the moment any segment is missing,
// not an object, or nil. It never panics on malformed input, which lets
// read sites tolerate legacy string-or-object shapes without branching.
func GetPath(obj any, path string, fallback any) any {
	if path == "" {
		return fallback
	}
	cur := obj
	for _, seg := range strings.Split(path, ".") {
		switch t := cur.(type) {
		case *omap.Map:
			v, ok := t.Get(seg)
			if !ok {
				return fallback
			}
			cur = v
		case map[string]any:
			v, ok := t[seg]
			if !ok {
				return fallback
			}
			cur = v
		default:
			return fallback
		}
	}
	if cur == nil {
		return fallback
	}
	return cur
}

// GetString is GetPath narrowed to string values; non-string terminals
// yield the fallback.
func GetString(obj any, path, fallback string) string {
	v := GetPath(obj, path, fallback)
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}
