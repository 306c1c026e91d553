// Package main provides roaring-bench, a hyperfine-driven benchmark tool
// for the roaring CLI.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	errHyperfineNotFound = errors.New("hyperfine not found; install it first")
	errNoHyperfineResult = errors.New("no results in hyperfine output")
)

// Case describes one command to benchmark against one or more generated
// bitset files.
type Case struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"` // run by hyperfine -N (no shell), used verbatim
	Prepare string `yaml:"prepare"` // optional, run before each timed run
	Runs    int    `yaml:"runs"`
}

// Manifest is the top-level YAML document read by roaring-bench.
type Manifest struct {
	Cases []Case `yaml:"cases"`
}

func defaultManifest(bin, dataDir string) Manifest {
	insertPath := filepath.Join(dataDir, "insert-scratch.roaring")
	sparse := filepath.Join(dataDir, "sparse-500k.roaring")
	dense := filepath.Join(dataDir, "dense-500k.roaring")
	clustered := filepath.Join(dataDir, "clustered-500k.roaring")

	return Manifest{Cases: []Case{
		{
			Name:    "insert-10",
			Command: fmt.Sprintf("%s --bitset %s insert 1 2 3 4 5 6 7 8 9 10", bin, insertPath),
			Prepare: fmt.Sprintf("rm -f %s", insertPath),
			Runs:    20,
		},
		{
			Name:    "optimize-dense",
			Command: fmt.Sprintf("%s --bitset %s optimize", bin, dense),
			Runs:    10,
		},
		{
			Name:    "union-sparse-dense",
			Command: fmt.Sprintf("%s union %s %s", bin, sparse, dense),
			Runs:    10,
		},
		{
			Name:    "intersect-dense-clustered",
			Command: fmt.Sprintf("%s intersect %s %s", bin, dense, clustered),
			Runs:    10,
		},
		{
			Name:    "stat-clustered",
			Command: fmt.Sprintf("%s --bitset %s stat", bin, clustered),
			Runs:    30,
		},
	}}
}

// hyperfineResultEntry mirrors one entry of hyperfine's --export-json output.
type hyperfineResultEntry struct {
	Command string    `json:"command"`
	Mean    float64   `json:"mean"`
	Stddev  float64   `json:"stddev"`
	Median  float64   `json:"median"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Times   []float64 `json:"times"`
}

type hyperfineResult struct {
	Results []hyperfineResultEntry `json:"results"`
}

// benchResult holds one case's summarized timing.
type benchResult struct {
	Name string
	Runs int
	Mean float64
	Min  float64
	Max  float64
}

func main() {
	bin := flag.String("bin", "roaring", "Path to the roaring binary")
	dataDir := flag.String("data", filepath.Join(os.TempDir(), "roaring-bench"), "Directory of seeded .roaring files (see roaring-seed)")
	manifestPath := flag.String("manifest", "", "Path to a YAML case manifest (default: built-in cases)")
	warmup := flag.Int("warmup", 3, "Number of warmup runs per case")
	outDir := flag.String("out", ".benchmarks", "Output directory for the Markdown report")
	flag.Parse()

	if err := run(*bin, *dataDir, *manifestPath, *warmup, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(bin, dataDir, manifestPath string, warmup int, outDir string) error {
	if _, err := exec.LookPath("hyperfine"); err != nil {
		return errHyperfineNotFound
	}

	if _, err := os.Stat(dataDir); err != nil {
		return fmt.Errorf("data dir %s missing; run roaring-seed first: %w", dataDir, err)
	}

	manifest, err := loadManifest(manifestPath, bin, dataDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var report strings.Builder
	report.WriteString(systemInfo())

	for _, c := range manifest.Cases {
		res, err := benchOne(c, warmup)
		if err != nil {
			report.WriteString(fmt.Sprintf("### %s\n\nfailed: %v\n\n", c.Name, err))
			continue
		}

		fmt.Printf("%-28s mean=%s min=%s max=%s (n=%d)\n", res.Name,
			time.Duration(res.Mean*float64(time.Second)),
			time.Duration(res.Min*float64(time.Second)),
			time.Duration(res.Max*float64(time.Second)),
			res.Runs)

		report.WriteString(fmt.Sprintf("### %s\n\nmean=%.6fs min=%.6fs max=%.6fs runs=%d\n\n",
			res.Name, res.Mean, res.Min, res.Max, res.Runs))
	}

	timestamp := time.Now().UTC().Format("20060102-150405")
	outFile := filepath.Join(outDir, fmt.Sprintf("roaring_bench_%s.md", timestamp))

	return os.WriteFile(outFile, []byte(report.String()), 0o600)
}

func loadManifest(path, bin, dataDir string) (Manifest, error) {
	if path == "" {
		return defaultManifest(bin, dataDir), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from CLI flag
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}

	if len(m.Cases) == 0 {
		return Manifest{}, fmt.Errorf("manifest %s has no cases", path)
	}

	return m, nil
}

func systemInfo() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Run %s\n\n", time.Now().UTC().Format(time.RFC3339)))

	ctx := context.Background()

	if ver, err := exec.CommandContext(ctx, "hyperfine", "--version").Output(); err == nil {
		sb.WriteString(fmt.Sprintf("- %s\n", strings.TrimSpace(string(ver))))
	}

	sb.WriteString("- note: hyperfine -N (no shell)\n\n")

	return sb.String()
}

func benchOne(c Case, warmup int) (benchResult, error) {
	fmt.Fprintf(os.Stderr, "--- %s ---\n", c.Name)

	tmpFile, err := os.CreateTemp("", "roaring-bench-*.json")
	if err != nil {
		return benchResult{}, fmt.Errorf("creating temp file: %w", err)
	}

	_ = tmpFile.Close()
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	runs := c.Runs
	if runs <= 0 {
		runs = 10
	}

	args := []string{"-N", "--warmup", strconv.Itoa(warmup), "--runs", strconv.Itoa(runs), "--export-json", tmpFile.Name()}
	if c.Prepare != "" {
		args = append(args, "--prepare", c.Prepare)
	}

	args = append(args, c.Command)

	hfCmd := exec.CommandContext(context.Background(), "hyperfine", args...)
	hfCmd.Stdout = os.Stdout
	hfCmd.Stderr = os.Stderr

	if err := hfCmd.Run(); err != nil {
		return benchResult{}, fmt.Errorf("hyperfine failed: %w", err)
	}

	jsonData, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return benchResult{}, fmt.Errorf("reading hyperfine output: %w", err)
	}

	var hf hyperfineResult
	if err := json.Unmarshal(jsonData, &hf); err != nil {
		return benchResult{}, fmt.Errorf("parsing hyperfine JSON: %w", err)
	}

	if len(hf.Results) == 0 {
		return benchResult{}, errNoHyperfineResult
	}

	r := hf.Results[0]

	return benchResult{Name: c.Name, Runs: len(r.Times), Mean: r.Mean, Min: r.Min, Max: r.Max}, nil
}
