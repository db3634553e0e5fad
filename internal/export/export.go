// Package export reads and writes the planner's JSON export document.
// Export filters out zero-duration tasks and days left empty by that
// filter; import validates the whole document up front and replaces
// the planner state wholesale.
package export

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/javiermolinar/horario/internal/schedule"
	"github.com/javiermolinar/horario/internal/task"
	"github.com/javiermolinar/horario/internal/timeutil"
)

// ErrBadFormat rejects a malformed import document. Nothing is
// applied when it is returned.
var ErrBadFormat = errors.New("malformed export document")

//go:embed schema.json
var rawSchema string

var documentSchema = jsonschema.MustCompileString("schema.json", rawSchema)

// Document is the export file format.
type Document struct {
	ExportedAt time.Time          `json:"exportedAt"`
	Planner    schedule.DayConfig `json:"planner"`
	Days       []DayExport        `json:"days"`
}

// DayExport holds one day's tasks.
type DayExport struct {
	DateKey string       `json:"dateKey"`
	Items   []*task.Task `json:"items"`
}

// Export builds the document from the store: global config plus every
// day that still has at least one positive-duration task after
// filtering. Days come out sorted ascending by date key.
func Export(st *schedule.Store) *Document {
	doc := &Document{
		ExportedAt: time.Now(),
		Planner:    st.GlobalConfig(),
		Days:       []DayExport{},
	}
	for _, key := range st.DayKeys() {
		var items []*task.Task
		for _, t := range st.Tasks(key) {
			if t.Duration > 0 {
				items = append(items, t)
			}
		}
		if len(items) == 0 {
			continue
		}
		doc.Days = append(doc.Days, DayExport{DateKey: key, Items: items})
	}
	return doc
}

// Marshal renders the document as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling export: %w", err)
	}
	return data, nil
}

// Parse validates data against the document schema and the domain
// invariants. Any failure rejects the whole document.
func Parse(data []byte) (*Document, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if err := documentSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return &doc, nil
}

// Apply replaces the store's global config and entire schedule map
// with the document's content. Day config overrides are untouched.
func Apply(st *schedule.Store, doc *Document) {
	days := make(map[string][]*task.Task, len(doc.Days))
	for _, d := range doc.Days {
		days[d.DateKey] = d.Items
	}
	st.Reset(doc.Planner, st.Overrides(), days)
}

func validateDocument(doc *Document) error {
	if err := doc.Planner.Validate(); err != nil {
		return fmt.Errorf("planner config: %w", err)
	}

	seen := make(map[string]bool, len(doc.Days))
	prev := ""
	for _, d := range doc.Days {
		if seen[d.DateKey] {
			return fmt.Errorf("duplicate day %s", d.DateKey)
		}
		seen[d.DateKey] = true
		if prev != "" && d.DateKey < prev {
			return fmt.Errorf("days out of order: %s after %s", d.DateKey, prev)
		}
		prev = d.DateKey

		for i, t := range d.Items {
			if t.Color == "" {
				t.Color = task.ColorBlue
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("day %s task %q: %w", d.DateKey, t.Name, err)
			}
			for _, other := range d.Items[:i] {
				if timeutil.TimesOverlap(t.StartTime, t.EndTime, other.StartTime, other.EndTime) {
					return fmt.Errorf("day %s: %q overlaps %q", d.DateKey, t.Name, other.Name)
				}
			}
		}
	}
	return nil
}

// Filename suggests an export file name for the given day.
func Filename(now time.Time) string {
	return "horario-" + now.Format("2006-01-02") + ".json"
}
