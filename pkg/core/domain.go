// Package core implements the checklist document engine: loading and
// normalizing arbitrarily shaped checklist JSON, tracked edits over
// requirements and taxonomies, and schema-conformant re-serialization.
package core

import "github.com/aretw0/reqdoc/pkg/omap"

// Document is the in-memory form of one checklist file. The underlying
// tree keeps every object insertion-ordered so unknown keys and authored
// key order round-trip untouched.
type Document struct {
	root *omap.Map
}

// Metadata returns the live metadata object of the document.
func (d *Document) Metadata() *omap.Map {
	v, _ := d.root.Get("metadata")
	m, _ := v.(*omap.Map)
	return m
}

// Requirements returns the live requirements map (key -> record).
func (d *Document) Requirements() *omap.Map {
	v, _ := d.root.Get("requirements")
	m, _ := v.(*omap.Map)
	return m
}

// Root returns the full document tree, including any top-level keys
// beyond metadata and requirements.
func (d *Document) Root() *omap.Map { return d.root }

// MonitoringType tags what kind of digital content the checklist targets.
type MonitoringType struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// MonitoringTypes is the fixed set of supported monitoring targets.
// The first entry is the default injected on load when the field is absent.
var MonitoringTypes = []MonitoringType{
	{Type: "web", Label: "Website"},
	{Type: "app", Label: "Mobile application"},
	{Type: "product", Label: "Product"},
	{Type: "service", Label: "Online service"},
}

// MonitoringTypeByID returns the monitoring type with the given tag.
func MonitoringTypeByID(id string) (MonitoringType, bool) {
	for _, mt := range MonitoringTypes {
		if mt.Type == id {
			return mt, true
		}
	}
	return MonitoringType{}, false
}

// ContentSubType is a level-1 node of the content-type taxonomy. Its ID is
// what requirement records reference in their contentType lists.
type ContentSubType struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

// ContentTypeCategory is a level-0 node of the content-type taxonomy.
type ContentTypeCategory struct {
	ID    string           `json:"id"`
	Text  string           `json:"text"`
	Types []ContentSubType `json:"types"`
}

// SampleSubType is a level-1 node of the sample-category taxonomy.
type SampleSubType struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
}

// SampleCategory is a level-0 node of the sample-category taxonomy.
// Structurally parallel to ContentTypeCategory but a distinct taxonomy
// with its own association semantics.
type SampleCategory struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	HasURL     bool            `json:"hasUrl"`
	Categories []SampleSubType `json:"categories"`
}

// Impact carries the scoring sub-record of a requirement.
type Impact struct {
	IsCritical        bool    `json:"isCritical"`
	PrimaryScore      float64 `json:"primaryScore"`
	SecondaryScore    float64 `json:"secondaryScore"`
	AssumedCompliance bool    `json:"assumedCompliance"`
}

// Reference is a titled link to an external standard.
type Reference struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Criterion is one pass/fail statement inside a check.
type Criterion struct {
	Requirement              string `json:"requirement"`
	FailureStatementTemplate string `json:"failureStatementTemplate"`
}

// Check is one testable condition of a requirement draft.
type Check struct {
	Condition    string      `json:"condition"`
	Logic        string      `json:"logic"` // "AND" or "OR"
	PassCriteria []Criterion `json:"passCriteria"`
	IfNo         []Criterion `json:"ifNo"`
}

// Draft carries the user-authored fields of a requirement for
// AddRequirement and UpdateRequirement. The canonical record shape is
// built by the engine; a draft never carries legacy shapes.
type Draft struct {
	Title               string
	MainCategory        string
	SubCategory         string
	Impact              Impact
	StandardReference   Reference
	Instructions        []string
	Checks              []Check
	Exceptions          string
	Examples            string
	Tips                string
	CommonErrors        string
	ExpectedObservation string
	ContentTypes        []string // content sub-type IDs
}
