package conform

import (
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cedricwaltercson/PatBoy/pkg/inst"
	"github.com/cedricwaltercson/PatBoy/pkg/result"
)

// Config holds sweep configuration.
type Config struct {
	Ops        []inst.OpCode      // Operations to sweep (defaults to all)
	NumWorkers int                // Number of parallel workers (defaults to NumCPU)
	Limit      int                // Mismatches kept per operation (0 = all)
	Want       Executor           // Expected behavior (defaults to Reference)
	Got        Executor           // Behavior under test (defaults to Core)
	Log        logrus.FieldLogger // Progress output (defaults to discarding)
}

// DefaultLimit is the mismatch cap the CLI uses.
const DefaultLimit = 16

func (cfg *Config) setDefaults() {
	if len(cfg.Ops) == 0 {
		cfg.Ops = inst.AllOps()
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	if cfg.Want == nil {
		cfg.Want = Reference{}
	}
	if cfg.Got == nil {
		cfg.Got = Core{}
	}
	if cfg.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Log = l
	}
}

// Run sweeps every configured operation and returns the report.
func Run(cfg Config) *result.Report {
	cfg.setDefaults()

	pool := NewWorkerPool(cfg.NumWorkers, cfg.Want, cfg.Got, cfg.Limit, cfg.Log)
	startTime := time.Now()

	tasks := make([]SweepTask, 0, len(cfg.Ops))
	for _, op := range cfg.Ops {
		tasks = append(tasks, SweepTask{Op: op})
	}
	cfg.Log.WithFields(logrus.Fields{
		"ops":     len(tasks),
		"workers": pool.NumWorkers,
	}).Debug("starting sweep")

	pool.RunTasks(tasks)

	checked, mismatched := pool.Stats()
	cfg.Log.WithFields(logrus.Fields{
		"checked":    checked,
		"mismatches": mismatched,
		"elapsed":    time.Since(startTime).Round(time.Millisecond),
	}).Info("sweep finished")

	return pool.Results.Report()
}

// SweepSingle checks one operation on a single worker.
func SweepSingle(op inst.OpCode, want, got Executor, limit int) result.OpReport {
	r := Run(Config{Ops: []inst.OpCode{op}, NumWorkers: 1, Limit: limit, Want: want, Got: got})
	return r.Ops[0]
}
