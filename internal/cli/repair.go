package cli

import (
	"context"
	"errors"
	"os"

	"github.com/feb29/compacts"
	flag "github.com/spf13/pflag"
)

// RepairCmd returns the repair command.
func RepairCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("repair", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "Report whether the file parses without rewriting it")

	return &Command{
		Flags: fs,
		Usage: "repair [flags]",
		Short: "Validate a bitset file, rewriting it in optimized form if it parses",
		Long: `Attempts to read the configured bitset file and report whether it is
well-formed per the Roaring binary format. A file that fails to parse
cannot be repaired automatically — it must be regenerated from source data.

Use --dry-run to validate without rewriting.`,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			f, err := os.Open(cfg.BitsetPath) //nolint:gosec // path comes from config/flags
			if err != nil {
				return err
			}

			m, readErr := roaring.ReadFrom(f)
			_ = f.Close()

			if readErr != nil {
				if errors.Is(readErr, roaring.ErrMalformedInput) {
					io.WarnLLM(readErr.Error(), "regenerate the bitset file from source data; it cannot be auto-repaired")
					return nil
				}

				return readErr
			}

			io.Printf("ok: %d value(s)\n", m.Count())

			if *dryRun {
				return nil
			}

			m.Optimize()

			return writeMapAtomic(cfg.BitsetPath, m)
		},
	}
}
