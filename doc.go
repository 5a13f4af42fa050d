// Package reqdoc is the composition root for the checklist document engine.
//
// It re-exports the core engine types so most consumers only import this
// package, while the building blocks remain available under pkg/ for
// callers that need them directly.
//
// Philosophy:
//
// Reqdoc treats an accessibility/compliance checklist file as a small
// in-memory database with a strict wire schema. Uploads arrive in
// whatever legacy shape earlier tools produced; the engine normalizes on
// save, never on read, so nothing a user authored is lost or reshaped
// until they export.
//
// Features:
//
//   - **Tolerant loading**: heterogeneous legacy shapes (string-or-object
//     category fields, bare-string instructions) read safely via path
//     accessors.
//   - **Schema-conformant export**: every serialized record carries the
//     full standard key set, with unknown extension keys passed through
//     verbatim and authored key order preserved.
//   - **Referential integrity**: content-type associations survive node
//     renames and moves, and are pruned on delete.
//   - **Deterministic versioning**: monotonic YYYY.M.rSEQ version stamps
//     derived from an injected clock.
//
// Usage:
//
//	session := reqdoc.New(reqdoc.WithLogger(logger))
//	doc, err := session.Load(rawJSON)
//	_, err = session.AddRequirement(reqdoc.Draft{Title: "Alt texts", MainCategory: "Images"})
//	data, warnings, err := session.Serialize()
package reqdoc
