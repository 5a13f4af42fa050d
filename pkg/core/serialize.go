package core

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/reqdoc/pkg/omap"
)

// Serialize stamps the document's version and modification date, runs
// every requirement through the schema normalizer and emits the final
// two-space-indented JSON. The version/date stamp mutates the live
// metadata so the in-memory document matches what was written.
//
// Entries whose value is not an object are dropped from the output and
// reported in the returned warning list: one corrupt record must not
// block saving the rest.
func Serialize(doc *Document, now time.Time, logger *slog.Logger) ([]byte, []string, error) {
	if doc == nil {
		return nil, nil, ErrNoDocument
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	meta := doc.Metadata()
	meta.Set("version", NextVersion(GetString(meta, "version", ""), now))
	meta.Set("dateModified", TodayISO(now))

	out := doc.Root().Clone()

	normalized := omap.New()
	var warnings []string
	reqs := doc.Requirements()
	for _, key := range reqs.Keys() {
		raw, _ := reqs.Get(key)
		rec, ok := NormalizeRequirement(raw)
		if !ok {
			msg := fmt.Sprintf("skipping malformed requirement %q: value is not an object", key)
			warnings = append(warnings, msg)
			logger.Warn("skipping malformed requirement", "key", key)
			continue
		}
		normalized.Set(key, rec)
	}
	out.Set("requirements", normalized)

	data, err := omap.EncodeJSON(out)
	if err != nil {
		return nil, warnings, &SerializationError{Err: err}
	}
	return data, warnings, nil
}

// Serialize exports the session's document using the session clock and
// clears the dirty flag on success.
func (s *Session) Serialize() ([]byte, []string, error) {
	return s.SerializeAt(s.clock())
}

// SerializeAt is Serialize with an explicit timestamp.
func (s *Session) SerializeAt(now time.Time) ([]byte, []string, error) {
	data, warnings, err := Serialize(s.doc, now, s.logger)
	if err != nil {
		return nil, warnings, err
	}
	s.dirty = false
	return data, warnings, nil
}
