package result

import (
	"sort"
	"sync"

	"github.com/cedricwaltercson/PatBoy/pkg/inst"
)

// Outcome is the register value and F an operation left behind.
type Outcome struct {
	Value uint16 `json:"value"`
	F     uint8  `json:"f"`
}

// Mismatch is one input on which two executors disagreed.
type Mismatch struct {
	Acc     uint16  `json:"acc"`
	Operand uint16  `json:"operand"`
	F       uint8   `json:"f"`
	Want    Outcome `json:"want"`
	Got     Outcome `json:"got"`
}

// OpReport summarizes the sweep of a single operation.
type OpReport struct {
	Op         inst.OpCode `json:"op"`
	Checked    int64       `json:"checked"`
	Digest     string      `json:"digest"`
	Mismatches []Mismatch  `json:"mismatches,omitempty"`
}

// Failed reports whether any mismatch was recorded.
func (r OpReport) Failed() bool {
	return len(r.Mismatches) > 0
}

// Table collects per-operation reports from concurrent workers.
type Table struct {
	mu  sync.Mutex
	ops []OpReport
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a report into the table.
func (t *Table) Add(r OpReport) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ops = append(t.ops, r)
}

// Reports returns a copy of all reports in catalog order.
func (t *Table) Reports() []OpReport {
	t.mu.Lock()
	defer t.mu.Unlock()
	result := make([]OpReport, len(t.ops))
	copy(result, t.ops)
	sort.Slice(result, func(i, j int) bool {
		return result[i].Op < result[j].Op
	})
	return result
}

// Len returns the number of reports.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ops)
}
