package conform

import (
	"fmt"
	"hash"

	"github.com/cespare/xxhash"

	"github.com/cedricwaltercson/PatBoy/pkg/inst"
)

// truthHash accumulates outputs in enumeration order.
type truthHash struct {
	h   hash.Hash64
	buf [3]byte
}

func newTruthHash() *truthHash {
	return &truthHash{h: xxhash.New()}
}

func (t *truthHash) add(out Output) {
	t.buf[0] = uint8(out.Value >> 8)
	t.buf[1] = uint8(out.Value)
	t.buf[2] = uint8(out.F)
	t.h.Write(t.buf[:])
}

func (t *truthHash) sum() uint64 {
	return t.h.Sum64()
}

// Digest hashes e's full truth table for op. Two executors with the same
// digest for an op behave identically on every swept input.
func Digest(e Executor, op inst.OpCode) uint64 {
	t := newTruthHash()
	EnumerateInputs(op, func(in Input) bool {
		t.add(e.Exec(op, in))
		return true
	})
	return t.sum()
}

// FormatDigest renders a digest the way reports store it.
func FormatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}
