package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/feb29/compacts"
	"github.com/peterh/liner"
)

// runREPL starts an interactive insert/remove/contains/stat/optimize
// session over one in-memory Map loaded from a bitset file. The Map is
// written back to that file only by the "save" command; exiting does not
// save.
func runREPL(args []string, _ map[string]string) int {
	path := "bitset.roaring"
	if len(args) > 0 {
		path = args[0]
	}

	m, err := loadOrNew(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	r := &repl{path: path, m: m}
	if err := r.run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	return 0
}

func loadOrNew(path string) (*roaring.Map, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from CLI args
	if err != nil {
		if os.IsNotExist(err) {
			return roaring.New(), nil
		}

		return nil, err
	}
	defer func() { _ = f.Close() }()

	return roaring.ReadFrom(f)
}

type repl struct {
	path  string
	m     *roaring.Map
	liner *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".roaring_history")
}

func (r *repl) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Printf("roaring repl - editing %s (%d values)\n", r.path, r.m.Count())
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("roaring> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		if !r.dispatch(strings.Fields(line)) {
			break
		}
	}

	if f, err := os.Create(historyFile()); err == nil {
		_, _ = r.liner.WriteHistory(f)
		_ = f.Close()
	}

	return nil
}

func (r *repl) dispatch(parts []string) bool {
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "insert":
		r.forEachValue(args, func(v uint32) { r.m.Insert(v) })
	case "remove":
		r.forEachValue(args, func(v uint32) { r.m.Remove(v) })
	case "contains":
		r.forEachValue(args, func(v uint32) {
			fmt.Printf("%d: %t\n", v, r.m.Contains(v))
		})
	case "stat":
		fmt.Printf("count:  %d\ncount0: %d\n", r.m.Count(), r.m.Count0())
	case "optimize":
		r.m.Optimize()
		fmt.Println("optimized")
	case "save":
		if err := r.save(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		} else {
			fmt.Println("saved")
		}
	case "help":
		printHelp()
	case "exit", "quit", "q":
		return false
	default:
		fmt.Printf("unknown command: %s (type 'help')\n", cmd)
	}

	return true
}

func (r *repl) forEachValue(args []string, fn func(uint32)) {
	for _, a := range args {
		v, err := strconv.ParseUint(a, 10, 32)
		if err != nil {
			fmt.Printf("not a valid uint32: %q\n", a)
			continue
		}

		fn(uint32(v))
	}
}

func (r *repl) save() error {
	f, err := os.Create(r.path) //nolint:gosec // path comes from CLI args
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = r.m.WriteTo(f)

	return err
}

func printHelp() {
	fmt.Println(`Commands:
  insert <value>...    Insert one or more uint32 values
  remove <value>...    Remove one or more uint32 values
  contains <value>...  Test membership
  stat                 Print cardinality
  optimize             Rewrite every block in its smallest representation
  save                 Write the current bitset back to its file
  help                 Show this help
  exit / quit / q      Exit (without saving)`)
}
