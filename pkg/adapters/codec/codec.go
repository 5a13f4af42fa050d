// Package codec handles reading and writing checklist documents in their
// on-disk formats. JSON is the canonical wire format; YAML is accepted as
// a convenience for hand-authored checklists. Both preserve authored key
// order through the omap tree.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// Codec defines how to read and write a specific file format.
type Codec interface {
	// Decode parses raw bytes into a document tree.
	Decode(data []byte) (*omap.Map, error)
	// Encode converts a document tree to bytes.
	Encode(root *omap.Map) ([]byte, error)
	// Name is the canonical format name ("json", "yaml").
	Name() string
}

// ForPath selects a codec from a file extension. JSON is the default for
// unknown extensions since it is the canonical format.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML{}
	default:
		return JSON{}
	}
}

// ForName selects a codec by format name.
func ForName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

// JSON is the canonical checklist format.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Decode(data []byte) (*omap.Map, error) {
	v, err := omap.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	root, ok := v.(*omap.Map)
	if !ok {
		return nil, fmt.Errorf("top level is not an object")
	}
	return root, nil
}

func (JSON) Encode(root *omap.Map) ([]byte, error) {
	return omap.EncodeJSON(root)
}
