package reqdoc

import (
	"log/slog"

	"github.com/aretw0/reqdoc/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.3.0"

// --- Types ---

// Session owns one loaded document and its editing state.
type Session = core.Session

// Document is the in-memory form of one checklist file.
type Document = core.Document

// Draft carries the user-authored fields of a requirement.
type Draft = core.Draft

// Check, Criterion, Impact and Reference are the authored sub-shapes of
// a draft.
type (
	Check     = core.Check
	Criterion = core.Criterion
	Impact    = core.Impact
	Reference = core.Reference
)

// NodeView and NodeFields are the taxonomy editing surface.
type (
	NodeView   = core.NodeView
	NodeFields = core.NodeFields
)

// SortOrder selects how requirement keys are listed.
type SortOrder = core.SortOrder

// Sort orders accepted by Session.SetSortOrder.
const (
	SortByTitle    = core.SortByTitle
	SortByCategory = core.SortByCategory
	SortByKey      = core.SortByKey
)

// --- Configuration ---

// Option configures a Session.
type Option = core.Option

// WithLogger sets the logger used for skip-and-warn reporting.
func WithLogger(logger *slog.Logger) Option {
	return core.WithLogger(logger)
}

// WithClock injects the time source used for version and date stamping.
func WithClock(clock core.Clock) Option {
	return core.WithClock(clock)
}

// WithIDSource injects the requirement ID generator.
func WithIDSource(src core.IDSource) Option {
	return core.WithIDSource(src)
}

// New creates an empty editing session. Load a document before editing.
func New(opts ...Option) *Session {
	return core.NewSession(opts...)
}
