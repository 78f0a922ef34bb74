package result

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cedricwaltercson/PatBoy/pkg/inst"
)

// Report is the saved outcome of a conformance sweep.
type Report struct {
	Ops []OpReport `json:"ops"`
}

// Report snapshots the table.
func (t *Table) Report() *Report {
	return &Report{Ops: t.Reports()}
}

// Failed reports whether any operation recorded a mismatch.
func (r *Report) Failed() bool {
	for i := range r.Ops {
		if r.Ops[i].Failed() {
			return true
		}
	}
	return false
}

// Find returns the entry for op, or nil.
func (r *Report) Find(op inst.OpCode) *OpReport {
	for i := range r.Ops {
		if r.Ops[i].Op == op {
			return &r.Ops[i]
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
