package core

import (
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// SortOrder selects how Keys lists the requirements of a session.
type SortOrder string

const (
	SortByTitle    SortOrder = "title"
	SortByCategory SortOrder = "category"
	SortByKey      SortOrder = "key"
)

// Session owns one loaded document and the editing state around it: the
// dirty flag, the list sort order and the last-focused requirement
// pointer. It replaces the free-floating globals a naive editor would
// keep. One session, one document; all operations are synchronous.
type Session struct {
	doc         *Document
	dirty       bool
	sortOrder   SortOrder
	lastFocused string

	logger *slog.Logger
	clock  Clock
	newID  IDSource
}

type options struct {
	logger *slog.Logger
	clock  Clock
	newID  IDSource
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger used for skip-and-warn reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock injects the time source used for version and date stamping.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithIDSource injects the requirement ID generator.
func WithIDSource(src IDSource) Option {
	return func(o *options) { o.newID = src }
}

// NewSession creates an empty session. Load must succeed before any other
// operation is meaningful.
func NewSession(opts ...Option) *Session {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	if o.newID == nil {
		o.newID = NewID
	}
	return &Session{
		sortOrder: SortByTitle,
		logger:    o.logger,
		clock:     o.clock,
		newID:     o.newID,
	}
}

// Load parses text and replaces the session's document wholesale. The
// top level must be an object carrying metadata and requirements objects;
// anything else is a ParseError and the previous document (if any) is
// kept untouched. A missing monitoringType gets the web default injected.
//
// Requirements are deliberately not normalized here: editing reads go
// through GetPath so legacy shapes stay safe, and normalization is
// deferred to serialization.
func (s *Session) Load(text string) (*Document, error) {
	v, err := omap.DecodeJSON([]byte(text))
	if err != nil {
		return nil, &ParseError{Message: "invalid JSON", Err: err}
	}
	root, ok := v.(*omap.Map)
	if !ok {
		return nil, &ParseError{Message: "top level is not an object"}
	}
	return s.LoadRoot(root)
}

// LoadRoot is Load for an already-decoded document tree, used by format
// codecs that parse something other than JSON text.
func (s *Session) LoadRoot(root *omap.Map) (*Document, error) {
	if root == nil {
		return nil, &ParseError{Message: "top level is not an object"}
	}
	meta, ok := mapField(root, "metadata")
	if !ok {
		return nil, &ParseError{Message: "missing metadata object"}
	}
	if _, ok := mapField(root, "requirements"); !ok {
		return nil, &ParseError{Message: "missing requirements object"}
	}

	if v, _ := meta.Get("monitoringType"); v == nil {
		mt := omap.New()
		mt.Set("type", MonitoringTypes[0].Type)
		mt.Set("label", MonitoringTypes[0].Label)
		meta.Set("monitoringType", mt)
	}

	s.doc = &Document{root: root}
	s.dirty = false
	s.lastFocused = ""
	s.logger.Debug("document loaded", "requirements", s.doc.Requirements().Len())
	return s.doc, nil
}

func mapField(root *omap.Map, key string) (*omap.Map, bool) {
	v, ok := root.Get(key)
	if !ok {
		return nil, false
	}
	m, ok := v.(*omap.Map)
	return m, ok
}

// Document returns the loaded document, or nil before a successful Load.
func (s *Session) Document() *Document { return s.doc }

// Dirty reports whether the document has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// LastFocused returns the key of the most recently added or updated
// requirement. Recomputed on rename so it never dangles.
func (s *Session) LastFocused() string { return s.lastFocused }

// SetSortOrder sets the listing order. Unknown values fall back to title.
func (s *Session) SetSortOrder(order SortOrder) {
	switch order {
	case SortByTitle, SortByCategory, SortByKey:
		s.sortOrder = order
	default:
		s.sortOrder = SortByTitle
	}
}

// SortOrder returns the current listing order.
func (s *Session) SortOrder() SortOrder { return s.sortOrder }

// SetMonitoringType switches metadata.monitoringType to the named target.
// Unknown tags are a ValidationError; setting the current value is a no-op.
func (s *Session) SetMonitoringType(id string) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	mt, ok := MonitoringTypeByID(id)
	if !ok {
		return &ValidationError{Violations: []string{"unknown monitoring type " + strconv.Quote(id)}}
	}
	meta := s.doc.Metadata()
	if GetString(meta, "monitoringType.type", "") == mt.Type {
		return nil
	}
	v := omap.New()
	v.Set("type", mt.Type)
	v.Set("label", mt.Label)
	meta.Set("monitoringType", v)
	s.dirty = true
	return nil
}

// validateDraft collects every violation so the caller can show one
// combined message, not just the first problem.
func validateDraft(d Draft) error {
	var violations []string
	if strings.TrimSpace(d.Title) == "" {
		violations = append(violations, "title must not be empty")
	}
	if strings.TrimSpace(d.MainCategory) == "" {
		violations = append(violations, "main category must not be empty")
	}
	for i, c := range d.Checks {
		if c.Condition == "" && (len(c.PassCriteria) > 0 || len(c.IfNo) > 0) {
			violations = append(violations, "check "+strconv.Itoa(i+1)+" has criteria but no condition")
		}
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// AddRequirement validates the draft, assigns a fresh id and key, builds
// the canonical record and inserts it. The document is marked dirty.
func (s *Session) AddRequirement(d Draft) (*omap.Map, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	id := s.newID()
	key := RequirementKey(d.Title, id)
	rec := buildRequirement(id, key, d)
	s.doc.Requirements().Set(key, rec)
	s.dirty = true
	s.lastFocused = key
	s.logger.Debug("requirement added", "key", key)
	return rec.Clone(), nil
}

// UpdateRequirement rebuilds the record under existingKey from the draft,
// reusing its id and carrying over non-standard keys. A changed title may
// recompute the key; the record is then rekeyed (rename-on-edit). The
// dirty flag only flips when the stored record actually changes.
func (s *Session) UpdateRequirement(existingKey string, d Draft) (*omap.Map, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	reqs := s.doc.Requirements()
	prevRaw, ok := reqs.Get(existingKey)
	if !ok {
		return nil, &NotFoundError{Kind: "requirement", Key: existingKey}
	}
	if err := validateDraft(d); err != nil {
		return nil, err
	}

	prev, _ := prevRaw.(*omap.Map)
	id := GetString(prev, "id", "")
	if id == "" {
		id = s.newID()
	}
	newKey := RequirementKey(d.Title, id)
	rec := buildRequirement(id, newKey, d)

	// Unknown keys on the stored record survive an edit.
	for _, k := range prev.Keys() {
		if rec.Has(k) {
			continue
		}
		v, _ := prev.Get(k)
		rec.Set(k, omap.CloneValue(v))
	}

	if newKey == existingKey && !recordsDiffer(prev, rec) {
		s.lastFocused = existingKey
		return rec.Clone(), nil
	}

	if newKey != existingKey {
		reqs.Delete(existingKey)
	}
	reqs.Set(newKey, rec)
	s.dirty = true
	s.lastFocused = newKey
	s.logger.Debug("requirement updated", "key", newKey, "renamed", newKey != existingKey)
	return rec.Clone(), nil
}

// recordsDiffer compares two records by their serialized form, the same
// representation the save path would emit.
func recordsDiffer(a, b *omap.Map) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return true
	}
	return string(ab) != string(bb)
}

// DeleteRequirement removes the record stored under key. Deletion is
// immediate; any undo confirmation lives in the caller.
func (s *Session) DeleteRequirement(key string) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	reqs := s.doc.Requirements()
	if !reqs.Has(key) {
		return &NotFoundError{Kind: "requirement", Key: key}
	}
	reqs.Delete(key)
	s.dirty = true
	if s.lastFocused == key {
		s.lastFocused = ""
	}
	s.logger.Debug("requirement deleted", "key", key)
	return nil
}

// Requirement returns a deep copy of the record stored under key.
// Mutations go through the session operations, never through the copy.
func (s *Session) Requirement(key string) (*omap.Map, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	v, ok := s.doc.Requirements().Get(key)
	if !ok {
		return nil, &NotFoundError{Kind: "requirement", Key: key}
	}
	m, ok := v.(*omap.Map)
	if !ok {
		return nil, &NotFoundError{Kind: "requirement", Key: key}
	}
	return m.Clone(), nil
}

// Keys lists the requirement keys in the session's sort order.
func (s *Session) Keys() []string {
	if s.doc == nil {
		return nil
	}
	reqs := s.doc.Requirements()
	keys := reqs.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return s.lessByOrder(reqs, keys[i], keys[j])
	})
	return keys
}

// Find returns the keys of requirements whose title or key contains text,
// case-insensitively, in the current sort order.
func (s *Session) Find(text string) []string {
	if s.doc == nil {
		return nil
	}
	needle := strings.ToLower(text)
	var out []string
	reqs := s.doc.Requirements()
	for _, k := range s.Keys() {
		rec, _ := reqs.Get(k)
		title := strings.ToLower(GetString(rec, "title", ""))
		if strings.Contains(title, needle) || strings.Contains(strings.ToLower(k), needle) {
			out = append(out, k)
		}
	}
	return out
}

func (s *Session) lessByOrder(reqs *omap.Map, a, b string) bool {
	switch s.sortOrder {
	case SortByKey:
		return a < b
	case SortByCategory:
		ra, _ := reqs.Get(a)
		rb, _ := reqs.Get(b)
		ca := categoryText(ra, "mainCategory")
		cb := categoryText(rb, "mainCategory")
		if ca != cb {
			return ca < cb
		}
		return titleOf(ra) < titleOf(rb)
	default:
		ra, _ := reqs.Get(a)
		rb, _ := reqs.Get(b)
		ta, tb := titleOf(ra), titleOf(rb)
		if ta != tb {
			return ta < tb
		}
		return a < b
	}
}

// categoryText reads a category field tolerating both the legacy string
// shape and the canonical {text, key} object.
func categoryText(rec any, field string) string {
	v := GetPath(rec, "metadata."+field, "")
	switch t := v.(type) {
	case string:
		return strings.ToLower(t)
	case *omap.Map:
		return strings.ToLower(GetString(t, "text", ""))
	default:
		return ""
	}
}

func titleOf(rec any) string {
	return strings.ToLower(GetString(rec, "title", ""))
}
