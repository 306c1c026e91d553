package cli

import (
	"context"

	"github.com/feb29/compacts"
	flag "github.com/spf13/pflag"
)

// setOpCmd builds a two-operand set-algebra command (union/intersect/
// diff/symdiff): it reads two bitset files, combines them with combine,
// and writes the result to --out (or prints the cardinality if --out is
// unset).
func setOpCmd(name, short string, combine func(a, b *roaring.Map) *roaring.Map) *Command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	out := fs.String("out", "", "Write the result to this file instead of just reporting its count")

	return &Command{
		Flags: fs,
		Usage: name + " <a.roaring> <b.roaring>",
		Short: short,
		Exec: func(_ context.Context, io *IO, args []string) error {
			if len(args) != 2 {
				return errTooFewOperands
			}

			a, err := loadMap(args[0])
			if err != nil {
				return err
			}

			b, err := loadMap(args[1])
			if err != nil {
				return err
			}

			result := combine(a, b)

			if *out == "" {
				io.Printf("%d\n", result.Count())
				return nil
			}

			return writeMapAtomic(*out, result)
		},
	}
}

// UnionCmd returns the union command.
func UnionCmd() *Command {
	return setOpCmd("union", "Compute the union of two bitset files", (*roaring.Map).Union)
}

// IntersectCmd returns the intersect command.
func IntersectCmd() *Command {
	return setOpCmd("intersect", "Compute the intersection of two bitset files", (*roaring.Map).Intersect)
}

// DiffCmd returns the diff command.
func DiffCmd() *Command {
	return setOpCmd("diff", "Compute the difference of two bitset files (a \\ b)", (*roaring.Map).Difference)
}

// SymdiffCmd returns the symdiff command.
func SymdiffCmd() *Command {
	return setOpCmd("symdiff", "Compute the symmetric difference of two bitset files", (*roaring.Map).SymmetricDifference)
}
