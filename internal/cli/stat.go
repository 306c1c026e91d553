package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// StatCmd returns the stat command.
func StatCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("stat", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "stat",
		Short: "Report cardinality and file age of a bitset file",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			m, err := loadMap(cfg.BitsetPath)
			if err != nil {
				return err
			}

			io.Printf("count:  %d\n", m.Count())
			io.Printf("count0: %d\n", m.Count0())

			age, err := fileAge(cfg.BitsetPath)
			if err == nil {
				io.Printf("age:    %s\n", age.Round(1e9))
			}

			return nil
		},
	}
}

// DumpCmd returns the dump command.
func DumpCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	limit := fs.Int("limit", 1000, "Maximum number of values to print")

	return &Command{
		Flags: fs,
		Usage: "dump [flags]",
		Short: "Print set bits in ascending order",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			m, err := loadMap(cfg.BitsetPath)
			if err != nil {
				return err
			}

			n := 0

			for x := range m.Bits() {
				if n >= *limit {
					io.WarnLLM("output truncated", "raise --limit to see more values")
					break
				}

				io.Printf("%d\n", x)

				n++
			}

			return nil
		},
	}
}

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "print-config",
		Short: "Print the effective configuration as JSON",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			s, err := FormatConfig(cfg)
			if err != nil {
				return err
			}

			io.Println(s)

			return nil
		},
	}
}
