package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cedricwaltercson/PatBoy/pkg/conform"
	"github.com/cedricwaltercson/PatBoy/pkg/cpu"
	"github.com/cedricwaltercson/PatBoy/pkg/inst"
	"github.com/cedricwaltercson/PatBoy/pkg/result"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	log := newLogger(out)

	var logLevel string
	rootCmd := &cobra.Command{
		Use:   "alucheck",
		Short: "Exhaustive flag conformance checks for the PatBoy ALU",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	// sweep command
	var opNames []string
	var numWorkers int
	var limit int
	var output string

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare every operation against the reference model over all inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := parseOps(opNames)
			if err != nil {
				return err
			}
			cfg := conform.Config{
				Ops:        ops,
				NumWorkers: numWorkers,
				Limit:      limit,
				Log:        log,
			}

			report := conform.Run(cfg)
			w := cmd.OutOrStdout()
			failed := 0
			for _, r := range report.Ops {
				status := "ok"
				if r.Failed() {
					status = fmt.Sprintf("FAIL (%d shown)", len(r.Mismatches))
					failed++
				}
				fmt.Fprintf(w, "  %-6s %-12s %10d inputs  %s  %s\n",
					r.Op, inst.Catalog[r.Op].Mnemonic, r.Checked, r.Digest, status)
				for _, m := range r.Mismatches {
					fmt.Fprintf(w, "         acc=%04X operand=%04X F=%02X: want %04X/%s got %04X/%s\n",
						m.Acc, m.Operand, m.F,
						m.Want.Value, cpu.Flags(m.Want.F), m.Got.Value, cpu.Flags(m.Got.F))
				}
			}

			if output != "" {
				if err := writeReport(output, report); err != nil {
					return err
				}
				fmt.Fprintf(w, "Written to %s\n", output)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d operations disagree with the reference", failed, len(report.Ops))
			}
			return nil
		},
	}
	sweepCmd.Flags().StringSliceVar(&opNames, "ops", nil, "Operations to sweep (default all)")
	sweepCmd.Flags().IntVar(&numWorkers, "workers", 0, "Number of workers (0 = NumCPU)")
	sweepCmd.Flags().IntVar(&limit, "limit", conform.DefaultLimit, "Mismatches kept per operation (0 = all)")
	sweepCmd.Flags().StringVar(&output, "output", "", "Output JSON report path")

	// trace command
	var flagsIn string

	traceCmd := &cobra.Command{
		Use:   "trace OP VALUE [OPERAND]",
		Short: "Apply one operation and show the register and flags before and after",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := inst.Lookup(args[0])
			if err != nil {
				return err
			}
			in, err := parseInput(op, args[1:], flagsIn)
			if err != nil {
				return err
			}

			got := conform.Core{}.Exec(op, in)
			w := cmd.OutOrStdout()
			width := 2
			if inst.Is16(op) {
				width = 4
			}
			fmt.Fprintf(w, "%s\n", inst.Disassemble(inst.Instruction{Op: op, Imm: in.Operand}))
			fmt.Fprintf(w, "  before: %0*X F=%02X[%s]\n", width, in.Acc, uint8(in.F), in.F)
			fmt.Fprintf(w, "  after:  %0*X F=%02X[%s]\n", width, got.Value, uint8(got.F), got.F)

			if want := (conform.Reference{}).Exec(op, in); want != got {
				log.WithFields(logrus.Fields{
					"want": fmt.Sprintf("%0*X/%s", width, want.Value, want.F),
					"got":  fmt.Sprintf("%0*X/%s", width, got.Value, got.F),
				}).Warn("reference model disagrees")
			}
			return nil
		},
	}
	traceCmd.Flags().StringVarP(&flagsIn, "flags", "f", "0", "Initial F register")

	// verify command
	verifyCmd := &cobra.Command{
		Use:   "verify [report.json]",
		Short: "Recompute digests and compare them with a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			report, err := result.ReadJSON(f)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Verifying %d operations...\n", len(report.Ops))
			changed := 0
			for _, r := range report.Ops {
				digest := conform.FormatDigest(conform.Digest(conform.Core{}, r.Op))
				status := "unchanged"
				if digest != r.Digest {
					status = fmt.Sprintf("CHANGED (now %s)", digest)
					changed++
				}
				fmt.Fprintf(w, "  %-6s %s %s\n", r.Op, r.Digest, status)
			}
			if changed > 0 {
				return fmt.Errorf("%d operations changed behavior", changed)
			}
			return nil
		},
	}

	// ops command
	opsCmd := &cobra.Command{
		Use:   "ops",
		Short: "List the operations and the flags they read and write",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, op := range inst.AllOps() {
				info := &inst.Catalog[op]
				fmt.Fprintf(w, "  %-6s %-12s %2d-bit  reads %s  writes %s\n",
					info.Name, info.Mnemonic, info.Width, cpu.Flags(info.Reads), cpu.Flags(info.Writes))
			}
		},
	}

	rootCmd.AddCommand(sweepCmd, traceCmd, verifyCmd, opsCmd)
	return rootCmd
}

// writeReport saves report as JSON. The close error is returned so a failed
// flush is not mistaken for a saved report.
func writeReport(path string, report *result.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := result.WriteJSON(f, report); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.WarnLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

func parseOps(names []string) ([]inst.OpCode, error) {
	var ops []inst.OpCode
	for _, name := range names {
		op, err := inst.Lookup(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseInput builds a conform.Input from command-line values, checking each
// against the operation's width.
func parseInput(op inst.OpCode, args []string, flags string) (conform.Input, error) {
	maxVal := 0xFF
	if inst.Is16(op) {
		maxVal = 0xFFFF
	}

	acc, err := parseValue(args[0], maxVal)
	if err != nil {
		return conform.Input{}, fmt.Errorf("value: %w", err)
	}
	in := conform.Input{Acc: uint16(acc)}

	switch {
	case inst.HasOperand(op) && len(args) < 2:
		return conform.Input{}, fmt.Errorf("%s needs an operand", op)
	case !inst.HasOperand(op) && len(args) > 1:
		return conform.Input{}, fmt.Errorf("%s takes no operand", op)
	case len(args) > 1:
		operand, err := parseValue(args[1], maxVal)
		if err != nil {
			return conform.Input{}, fmt.Errorf("operand: %w", err)
		}
		in.Operand = uint16(operand)
	}

	f, err := parseValue(flags, 0xFF)
	if err != nil {
		return conform.Input{}, fmt.Errorf("flags: %w", err)
	}
	in.F = cpu.Flags(uint8(f) & cpu.FlagMask)
	return in, nil
}

// parseValue accepts 0x1F, 1Fh, $1F and decimal.
func parseValue(s string, maxVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}

	digits, base := s, 10
	switch upper := strings.ToUpper(s); {
	case strings.HasPrefix(upper, "0X"):
		digits, base = s[2:], 16
	case strings.HasPrefix(upper, "$"):
		digits, base = s[1:], 16
	case strings.HasSuffix(upper, "H"):
		digits, base = s[:len(s)-1], 16
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q: %w", s, err)
	}
	if v > uint64(maxVal) {
		return 0, fmt.Errorf("%s out of range 0..%X", s, maxVal)
	}
	return int(v), nil
}
