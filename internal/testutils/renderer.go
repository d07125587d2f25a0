package testutils

import (
	"fmt"
	"strings"
	"sync"

	"opshell/pkg/optypes"
)

// Rendered is one call recorded by RecordingRenderer.
type Rendered struct {
	Kind string
	Text string
	Rows [][]string
	Data any
}

// RecordingRenderer implements optypes.Renderer by recording every call.
type RecordingRenderer struct {
	mu     sync.Mutex
	Events []Rendered
	Pauses int
}

// NewRecordingRenderer creates an empty recorder.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{}
}

func (r *RecordingRenderer) add(e Rendered) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
}

// Println records plain text.
func (r *RecordingRenderer) Println(text string) { r.add(Rendered{Kind: "line", Text: text}) }

// Info records an info message.
func (r *RecordingRenderer) Info(text string) { r.add(Rendered{Kind: "info", Text: text}) }

// Success records a success message.
func (r *RecordingRenderer) Success(text string) { r.add(Rendered{Kind: "success", Text: text}) }

// Warning records a warning.
func (r *RecordingRenderer) Warning(text string) { r.add(Rendered{Kind: "warning", Text: text}) }

// Error records an error.
func (r *RecordingRenderer) Error(text string) { r.add(Rendered{Kind: "error", Text: text}) }

// Note records a note.
func (r *RecordingRenderer) Note(text string) { r.add(Rendered{Kind: "note", Text: text}) }

// Header records a header.
func (r *RecordingRenderer) Header(title, subtitle string) {
	r.add(Rendered{Kind: "header", Text: title + "\n" + subtitle})
}

// KeyValues records label/value rows.
func (r *RecordingRenderer) KeyValues(rows []optypes.KeyValue) {
	var out [][]string
	for _, kv := range rows {
		out = append(out, []string{kv.Label, kv.Value})
	}
	r.add(Rendered{Kind: "keyvalues", Rows: out})
}

// Table records a table with its header as the first row.
func (r *RecordingRenderer) Table(headers []string, rows [][]string) {
	all := append([][]string{headers}, rows...)
	r.add(Rendered{Kind: "table", Rows: all})
}

// Result records a displayed script result.
func (r *RecordingRenderer) Result(value any) {
	r.add(Rendered{Kind: "result", Data: value, Text: fmt.Sprint(value)})
}

// Pause counts acknowledgements.
func (r *RecordingRenderer) Pause(message string) {
	r.mu.Lock()
	r.Pauses++
	r.mu.Unlock()
	r.add(Rendered{Kind: "pause", Text: message})
}

// OfKind returns the recorded events of one kind.
func (r *RecordingRenderer) OfKind(kind string) []Rendered {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Rendered
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any event of kind has text containing substr.
func (r *RecordingRenderer) Contains(kind, substr string) bool {
	for _, e := range r.OfKind(kind) {
		if strings.Contains(e.Text, substr) {
			return true
		}
	}
	return false
}
