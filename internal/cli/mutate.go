package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/feb29/compacts"
	flag "github.com/spf13/pflag"
)

// InsertCmd returns the insert command.
func InsertCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("insert", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "insert <value>...",
		Short: "Insert one or more uint32 values",
		Exec: func(_ context.Context, io *IO, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			added := 0

			err = withMapLock(cfg.BitsetPath, cfg.OptimizeOnWrite, func(m *roaring.Map) (*roaring.Map, error) {
				for _, v := range values {
					if m.Insert(v) {
						added++
					}
				}

				return m, nil
			})
			if err != nil {
				return err
			}

			io.Printf("inserted %d of %d value(s)\n", added, len(values))

			return nil
		},
	}
}

// RemoveCmd returns the remove command.
func RemoveCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "remove <value>...",
		Short: "Remove one or more uint32 values",
		Exec: func(_ context.Context, io *IO, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			removed := 0

			err = withMapLock(cfg.BitsetPath, cfg.OptimizeOnWrite, func(m *roaring.Map) (*roaring.Map, error) {
				for _, v := range values {
					if m.Remove(v) {
						removed++
					}
				}

				return m, nil
			})
			if err != nil {
				return err
			}

			io.Printf("removed %d of %d value(s)\n", removed, len(values))

			return nil
		},
	}
}

// ContainsCmd returns the contains command.
func ContainsCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("contains", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "contains <value>...",
		Short: "Test membership of one or more uint32 values",
		Exec: func(_ context.Context, io *IO, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			m, err := loadMap(cfg.BitsetPath)
			if err != nil {
				return err
			}

			allPresent := true

			for _, v := range values {
				present := m.Contains(v)
				if !present {
					allPresent = false
				}

				io.Printf("%d: %t\n", v, present)
			}

			if !allPresent {
				io.WarnLLM("one or more values absent", "check the printed per-value results")
			}

			return nil
		},
	}
}

// OptimizeCmd returns the optimize command.
func OptimizeCmd(cfg Config) *Command {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "optimize",
		Short: "Rewrite every block in its smallest representation",
		Exec: func(_ context.Context, io *IO, _ []string) error {
			err := withMapLock(cfg.BitsetPath, false, func(m *roaring.Map) (*roaring.Map, error) {
				m.Optimize()
				return m, nil
			})
			if err != nil {
				return err
			}

			io.Println("optimized")

			return nil
		},
	}
}

func parseValues(args []string) ([]uint32, error) {
	if len(args) == 0 {
		return nil, errNoValues
	}

	values := make([]uint32, len(args))

	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errNotAUint32, a)
		}

		values[i] = uint32(v)
	}

	return values, nil
}
