package core

import "github.com/aretw0/reqdoc/pkg/omap"

// The association reconciler maintains the many-to-many relation between
// requirement records and content sub-type IDs. It never creates taxonomy
// nodes; it only keeps the reference lists consistent. Orphaned IDs are
// tolerated on read and filtered when resolving labels, but stay in
// storage until PruneReferencesTo is invoked (lazy cleanup).

// SetAssociation toggles subTypeID in the requirement's contentType list.
// Idempotent: it reports whether a mutation actually occurred, so
// redundant toggles never mark the document dirty.
func (s *Session) SetAssociation(reqKey, subTypeID string, associated bool) (bool, error) {
	if s.doc == nil {
		return false, ErrNoDocument
	}
	rec, ok := s.requirementRecord(reqKey)
	if !ok {
		return false, &NotFoundError{Kind: "requirement", Key: reqKey}
	}

	v, _ := rec.Get("contentType")
	list, _ := v.([]any)
	idx := -1
	for i, e := range list {
		if id, ok := e.(string); ok && id == subTypeID {
			idx = i
			break
		}
	}

	switch {
	case associated && idx < 0:
		rec.Set("contentType", append(list, subTypeID))
	case !associated && idx >= 0:
		rec.Set("contentType", append(list[:idx], list[idx+1:]...))
	default:
		return false, nil
	}
	s.dirty = true
	return true, nil
}

// BulkReconcile applies SetAssociation across many requirements in one
// pass and returns how many of them actually changed.
func (s *Session) BulkReconcile(reqKeys []string, subTypeID string, desired bool) (int, error) {
	changed := 0
	for _, key := range reqKeys {
		did, err := s.SetAssociation(key, subTypeID, desired)
		if err != nil {
			return changed, err
		}
		if did {
			changed++
		}
	}
	return changed, nil
}

// PruneReferencesTo removes subTypeID from every requirement's contentType
// list, returning the number of requirements touched. Used when a sub-type
// is deleted from the taxonomy.
func (s *Session) PruneReferencesTo(subTypeID string) (int, error) {
	if s.doc == nil {
		return 0, ErrNoDocument
	}
	n := s.pruneReferences(subTypeID)
	if n > 0 {
		s.dirty = true
	}
	return n, nil
}

func (s *Session) pruneReferences(subTypeID string) int {
	if subTypeID == "" {
		return 0
	}
	touched := 0
	reqs := s.doc.Requirements()
	for _, key := range reqs.Keys() {
		rec, ok := s.requirementRecord(key)
		if !ok {
			continue
		}
		v, _ := rec.Get("contentType")
		list, _ := v.([]any)
		kept := list[:0:0]
		for _, e := range list {
			if id, ok := e.(string); ok && id == subTypeID {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) != len(list) {
			rec.Set("contentType", kept)
			touched++
		}
	}
	return touched
}

// ResolveAssociations maps a requirement's contentType references to their
// sub-type nodes for display. Dangling references are reported separately
// rather than resolved or dropped.
func (s *Session) ResolveAssociations(reqKey string) ([]ContentSubType, []string, error) {
	if s.doc == nil {
		return nil, nil, ErrNoDocument
	}
	rec, ok := s.requirementRecord(reqKey)
	if !ok {
		return nil, nil, &NotFoundError{Kind: "requirement", Key: reqKey}
	}

	index := s.contentSubTypeIndex()
	v, _ := rec.Get("contentType")
	list, _ := v.([]any)
	var resolved []ContentSubType
	var dangling []string
	for _, e := range list {
		id, ok := e.(string)
		if !ok {
			continue
		}
		if st, ok := index[id]; ok {
			resolved = append(resolved, st)
		} else {
			dangling = append(dangling, id)
		}
	}
	return resolved, dangling, nil
}

// DanglingReferences scans the whole document for contentType references
// that no longer resolve to a taxonomy node, keyed by requirement.
func (s *Session) DanglingReferences() (map[string][]string, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	index := s.contentSubTypeIndex()
	out := map[string][]string{}
	reqs := s.doc.Requirements()
	for _, key := range reqs.Keys() {
		rec, ok := s.requirementRecord(key)
		if !ok {
			continue
		}
		v, _ := rec.Get("contentType")
		list, _ := v.([]any)
		for _, e := range list {
			if id, ok := e.(string); ok {
				if _, known := index[id]; !known {
					out[key] = append(out[key], id)
				}
			}
		}
	}
	return out, nil
}

func (s *Session) contentSubTypeIndex() map[string]ContentSubType {
	index := map[string]ContentSubType{}
	cats, err := s.ContentTypes().Categories()
	if err != nil {
		return index
	}
	for _, cat := range cats {
		for _, child := range cat.Children {
			index[child.ID] = ContentSubType{
				ID:          child.ID,
				Text:        child.Text,
				Description: child.Description,
			}
		}
	}
	return index
}

func (s *Session) requirementRecord(key string) (*omap.Map, bool) {
	v, ok := s.doc.Requirements().Get(key)
	if !ok {
		return nil, false
	}
	m, ok := v.(*omap.Map)
	return m, ok
}
