package core

import (
	"strconv"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// NodeView is a read-only snapshot of a taxonomy subtree returned by
// hierarchy operations. Children is nil for level-1 nodes.
type NodeView struct {
	ID          string
	Text        string
	Description string
	HasURL      bool
	Children    []NodeView
}

// NodeFields carries the editable fields of a taxonomy node. HasURL only
// applies to sample categories and is ignored elsewhere; nil leaves the
// stored flag alone.
type NodeFields struct {
	Text        string
	Description string
	HasURL      *bool
}

type taxonomyKind int

const (
	taxContentTypes taxonomyKind = iota
	taxSamples
)

// Hierarchy edits one of the document's two-level taxonomies in place.
// Node IDs are slug-derived and stay stable across renames, which is what
// keeps requirement associations valid when a node moves or is retitled.
type Hierarchy struct {
	s    *Session
	kind taxonomyKind
}

// ContentTypes returns the editor for metadata.contentTypes.
func (s *Session) ContentTypes() *Hierarchy {
	return &Hierarchy{s: s, kind: taxContentTypes}
}

// SampleCategories returns the editor for metadata.samples.sampleCategories.
func (s *Session) SampleCategories() *Hierarchy {
	return &Hierarchy{s: s, kind: taxSamples}
}

func (h *Hierarchy) childField() string {
	if h.kind == taxSamples {
		return "categories"
	}
	return "types"
}

// categories returns the live level-0 list, creating the containing
// structure when absent so a fresh document can grow a taxonomy.
func (h *Hierarchy) categories() ([]any, func([]any), error) {
	if h.s.doc == nil {
		return nil, nil, ErrNoDocument
	}
	meta := h.s.doc.Metadata()

	holder := meta
	field := "contentTypes"
	if h.kind == taxSamples {
		field = "sampleCategories"
		v, _ := meta.Get("samples")
		samples, ok := v.(*omap.Map)
		if !ok {
			samples = omap.New()
			meta.Set("samples", samples)
		}
		holder = samples
	}

	v, _ := holder.Get(field)
	list, ok := v.([]any)
	if !ok {
		list = []any{}
	}
	store := func(updated []any) { holder.Set(field, updated) }
	return list, store, nil
}

// Categories returns a snapshot of the whole taxonomy.
func (h *Hierarchy) Categories() ([]NodeView, error) {
	list, _, err := h.categories()
	if err != nil {
		return nil, err
	}
	out := make([]NodeView, 0, len(list))
	for _, raw := range list {
		if cat, ok := raw.(*omap.Map); ok {
			out = append(out, h.viewCategory(cat))
		}
	}
	return out, nil
}

func (h *Hierarchy) viewCategory(cat *omap.Map) NodeView {
	view := NodeView{
		ID:     GetString(cat, "id", ""),
		Text:   GetString(cat, "text", ""),
		HasURL: GetPath(cat, "hasUrl", false) == true,
	}
	children, _ := cat.Get(h.childField())
	if list, ok := children.([]any); ok {
		view.Children = make([]NodeView, 0, len(list))
		for _, raw := range list {
			if child, ok := raw.(*omap.Map); ok {
				view.Children = append(view.Children, NodeView{
					ID:          GetString(child, "id", ""),
					Text:        GetString(child, "text", ""),
					Description: GetString(child, "description", ""),
				})
			}
		}
	}
	return view
}

// uniqueID derives a slug id from text that is unique across the whole
// taxonomy, suffixing -2, -3, ... on collision.
func (h *Hierarchy) uniqueID(text string) string {
	base := Slugify(text)
	if base == "" {
		base = "item"
	}
	list, _, _ := h.categories()
	taken := map[string]bool{}
	for _, raw := range list {
		cat, ok := raw.(*omap.Map)
		if !ok {
			continue
		}
		taken[GetString(cat, "id", "")] = true
		if children, ok2 := childList(cat, h.childField()); ok2 {
			for _, c := range children {
				taken[GetString(c, "id", "")] = true
			}
		}
	}
	id := base
	for n := 2; taken[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func childList(cat *omap.Map, field string) ([]*omap.Map, bool) {
	v, _ := cat.Get(field)
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]*omap.Map, 0, len(raw))
	for _, e := range raw {
		if m, ok := e.(*omap.Map); ok {
			out = append(out, m)
		}
	}
	return out, true
}

// findCategory returns the category map and its index, or -1.
func (h *Hierarchy) findCategory(id string) (*omap.Map, int) {
	list, _, err := h.categories()
	if err != nil {
		return nil, -1
	}
	for i, raw := range list {
		if cat, ok := raw.(*omap.Map); ok && GetString(cat, "id", "") == id {
			return cat, i
		}
	}
	return nil, -1
}

// findChild returns a level-1 node, its parent category and its index in
// the parent's child list.
func (h *Hierarchy) findChild(id string) (*omap.Map, *omap.Map, int) {
	list, _, err := h.categories()
	if err != nil {
		return nil, nil, -1
	}
	for _, raw := range list {
		cat, ok := raw.(*omap.Map)
		if !ok {
			continue
		}
		v, _ := cat.Get(h.childField())
		children, ok := v.([]any)
		if !ok {
			continue
		}
		for i, c := range children {
			if child, ok := c.(*omap.Map); ok && GetString(child, "id", "") == id {
				return child, cat, i
			}
		}
	}
	return nil, nil, -1
}

// AddNode inserts a new node. An empty parentID creates a level-0
// category; otherwise the node becomes a child of that category.
// Returns the updated category subtree and whether the document changed.
func (h *Hierarchy) AddNode(parentID string, f NodeFields) (NodeView, bool, error) {
	list, store, err := h.categories()
	if err != nil {
		return NodeView{}, false, err
	}
	if f.Text == "" {
		return NodeView{}, false, &ValidationError{Violations: []string{"node text must not be empty"}}
	}

	if parentID == "" {
		cat := omap.New()
		cat.Set("id", h.uniqueID(f.Text))
		cat.Set("text", f.Text)
		if h.kind == taxSamples {
			hasURL := false
			if f.HasURL != nil {
				hasURL = *f.HasURL
			}
			cat.Set("hasUrl", hasURL)
		}
		cat.Set(h.childField(), []any{})
		store(append(list, cat))
		h.s.dirty = true
		return h.viewCategory(cat), true, nil
	}

	parent, _ := h.findCategory(parentID)
	if parent == nil {
		return NodeView{}, false, &NotFoundError{Kind: "node", Key: parentID}
	}
	child := omap.New()
	child.Set("id", h.uniqueID(f.Text))
	child.Set("text", f.Text)
	if f.Description != "" {
		child.Set("description", f.Description)
	}
	v, _ := parent.Get(h.childField())
	children, _ := v.([]any)
	parent.Set(h.childField(), append(children, child))
	h.s.dirty = true
	return h.viewCategory(parent), true, nil
}

// EditNode updates the text (and description / hasUrl where applicable)
// of a node. The id is deliberately left alone so references hold.
func (h *Hierarchy) EditNode(nodeID string, f NodeFields) (NodeView, bool, error) {
	if f.Text == "" {
		return NodeView{}, false, &ValidationError{Violations: []string{"node text must not be empty"}}
	}

	if cat, _ := h.findCategory(nodeID); cat != nil {
		changed := false
		if GetString(cat, "text", "") != f.Text {
			cat.Set("text", f.Text)
			changed = true
		}
		if h.kind == taxSamples && f.HasURL != nil {
			cur := GetPath(cat, "hasUrl", false) == true
			if cur != *f.HasURL {
				cat.Set("hasUrl", *f.HasURL)
				changed = true
			}
		}
		if changed {
			h.s.dirty = true
		}
		return h.viewCategory(cat), changed, nil
	}

	child, parent, _ := h.findChild(nodeID)
	if child == nil {
		return NodeView{}, false, &NotFoundError{Kind: "node", Key: nodeID}
	}
	changed := false
	if GetString(child, "text", "") != f.Text {
		child.Set("text", f.Text)
		changed = true
	}
	if GetString(child, "description", "") != f.Description {
		if f.Description == "" {
			child.Delete("description")
		} else {
			child.Set("description", f.Description)
		}
		changed = true
	}
	if changed {
		h.s.dirty = true
	}
	return h.viewCategory(parent), changed, nil
}

// DeleteNode removes a node. Deleting a level-0 category cascades to all
// of its children; every removed content sub-type is pruned from the
// requirements that referenced it.
func (h *Hierarchy) DeleteNode(nodeID string) (bool, error) {
	list, store, err := h.categories()
	if err != nil {
		return false, err
	}

	if cat, idx := h.findCategory(nodeID); cat != nil {
		if h.kind == taxContentTypes {
			if children, ok := childList(cat, h.childField()); ok {
				for _, child := range children {
					h.s.pruneReferences(GetString(child, "id", ""))
				}
			}
		}
		store(append(list[:idx], list[idx+1:]...))
		h.s.dirty = true
		return true, nil
	}

	child, parent, idx := h.findChild(nodeID)
	if child == nil {
		return false, &NotFoundError{Kind: "node", Key: nodeID}
	}
	if h.kind == taxContentTypes {
		h.s.pruneReferences(nodeID)
	}
	v, _ := parent.Get(h.childField())
	children, _ := v.([]any)
	parent.Set(h.childField(), append(children[:idx], children[idx+1:]...))
	h.s.dirty = true
	return true, nil
}

// MoveNode reparents a level-1 node to another category. Associations are
// keyed by sub-type id, not by parent, so they survive the move.
func (h *Hierarchy) MoveNode(nodeID, newParentID string) (NodeView, bool, error) {
	child, parent, idx := h.findChild(nodeID)
	if child == nil {
		return NodeView{}, false, &NotFoundError{Kind: "node", Key: nodeID}
	}
	target, _ := h.findCategory(newParentID)
	if target == nil {
		return NodeView{}, false, &NotFoundError{Kind: "node", Key: newParentID}
	}
	if GetString(parent, "id", "") == newParentID {
		return h.viewCategory(target), false, nil
	}

	v, _ := parent.Get(h.childField())
	children, _ := v.([]any)
	parent.Set(h.childField(), append(children[:idx], children[idx+1:]...))

	tv, _ := target.Get(h.childField())
	targetChildren, _ := tv.([]any)
	target.Set(h.childField(), append(targetChildren, child))

	h.s.dirty = true
	return h.viewCategory(target), true, nil
}

// ReorderNode moves a node to newIndex among its siblings, clamped to the
// valid range.
func (h *Hierarchy) ReorderNode(nodeID string, newIndex int) (bool, error) {
	list, store, err := h.categories()
	if err != nil {
		return false, err
	}

	if cat, idx := h.findCategory(nodeID); cat != nil {
		moved, changed := reorder(list, idx, newIndex)
		if changed {
			store(moved)
			h.s.dirty = true
		}
		return changed, nil
	}

	child, parent, idx := h.findChild(nodeID)
	if child == nil {
		return false, &NotFoundError{Kind: "node", Key: nodeID}
	}
	v, _ := parent.Get(h.childField())
	children, _ := v.([]any)
	moved, changed := reorder(children, idx, newIndex)
	if changed {
		parent.Set(h.childField(), moved)
		h.s.dirty = true
	}
	return changed, nil
}

func reorder(list []any, from, to int) ([]any, bool) {
	if to < 0 {
		to = 0
	}
	if to > len(list)-1 {
		to = len(list) - 1
	}
	if from == to {
		return list, false
	}
	item := list[from]
	rest := append(append([]any{}, list[:from]...), list[from+1:]...)
	out := append(append(append([]any{}, rest[:to]...), item), rest[to:]...)
	return out, true
}
