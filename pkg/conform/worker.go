package conform

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cedricwaltercson/PatBoy/pkg/inst"
	"github.com/cedricwaltercson/PatBoy/pkg/result"
)

// WorkerPool sweeps operations in parallel. Each operation is swept by a
// single goroutine so its digest sees inputs in enumeration order.
type WorkerPool struct {
	NumWorkers int
	Results    *result.Table

	want, got  Executor
	limit      int
	log        logrus.FieldLogger
	checked    atomic.Int64
	mismatched atomic.Int64
}

// NewWorkerPool creates a pool comparing got against want.
func NewWorkerPool(numWorkers int, want, got Executor, limit int, log logrus.FieldLogger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		NumWorkers: numWorkers,
		Results:    result.NewTable(),
		want:       want,
		got:        got,
		limit:      limit,
		log:        log,
	}
}

// SweepTask is a unit of work: one operation's full input space.
type SweepTask struct {
	Op inst.OpCode
}

// Stats returns sweep statistics.
func (wp *WorkerPool) Stats() (checked, mismatched int64) {
	return wp.checked.Load(), wp.mismatched.Load()
}

// RunTasks distributes sweep tasks across workers.
func (wp *WorkerPool) RunTasks(tasks []SweepTask) {
	ch := make(chan SweepTask, len(tasks))
	for _, t := range tasks {
		ch <- t
	}
	close(ch)

	var wg sync.WaitGroup
	for i := 0; i < wp.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range ch {
				wp.processTask(task)
			}
		}()
	}
	wg.Wait()
}

// processTask sweeps one operation, hashing got's outputs and recording
// disagreements with want.
func (wp *WorkerPool) processTask(task SweepTask) {
	op := task.Op
	start := time.Now()
	digest := newTruthHash()

	var checked, mismatched int64
	var found []result.Mismatch
	EnumerateInputs(op, func(in Input) bool {
		checked++
		w, g := wp.want.Exec(op, in), wp.got.Exec(op, in)
		digest.add(g)
		if w != g {
			mismatched++
			if wp.limit <= 0 || len(found) < wp.limit {
				found = append(found, mismatch(in, w, g))
			}
		}
		return true
	})
	wp.checked.Add(checked)
	wp.mismatched.Add(mismatched)

	report := result.OpReport{
		Op:         op,
		Checked:    checked,
		Digest:     FormatDigest(digest.sum()),
		Mismatches: found,
	}
	wp.Results.Add(report)

	entry := wp.log.WithFields(logrus.Fields{
		"op":      op.String(),
		"checked": checked,
		"digest":  report.Digest,
		"elapsed": time.Since(start).Round(time.Millisecond),
	})
	if mismatched > 0 {
		first := found[0]
		entry.WithFields(logrus.Fields{
			"mismatches": mismatched,
			"first":      inst.Disassemble(inst.Instruction{Op: op, Imm: first.Operand}),
			"acc":        first.Acc,
			"f":          first.F,
		}).Warn("operation disagrees with reference")
		return
	}
	entry.Info("operation conforms")
}
