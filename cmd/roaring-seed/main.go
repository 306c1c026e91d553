// Package main provides roaring-seed, a tool that generates synthetic
// bitsets for benchmarking.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"

	"github.com/feb29/compacts"
	"gopkg.in/yaml.v3"
)

// Scenario describes one synthetic bitset to generate.
type Scenario struct {
	Name         string `yaml:"name"`
	Cardinality  int    `yaml:"cardinality"`
	Distribution string `yaml:"distribution"` // "sparse", "dense", "clustered"
	KeySpace     int    `yaml:"key_space"`    // number of blockCapacity-sized high-key ranges to spread over
	Seed         uint64 `yaml:"seed"`
}

// Manifest is the top-level YAML document read by roaring-seed.
type Manifest struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

func defaultManifest() Manifest {
	return Manifest{Scenarios: []Scenario{
		{Name: "sparse-1k", Cardinality: 1_000, Distribution: "sparse", KeySpace: 16, Seed: 1},
		{Name: "sparse-500k", Cardinality: 500_000, Distribution: "sparse", KeySpace: 64, Seed: 2},
		{Name: "dense-500k", Cardinality: 500_000, Distribution: "dense", KeySpace: 8, Seed: 3},
		{Name: "clustered-500k", Cardinality: 500_000, Distribution: "clustered", KeySpace: 32, Seed: 4},
	}}
}

func main() {
	manifestPath := flag.String("manifest", "", "Path to a YAML scenario manifest (default: built-in scenarios)")
	outDir := flag.String("out", filepath.Join(os.TempDir(), "roaring-bench"), "Output directory for generated .roaring files")
	flag.Parse()

	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o750); err != nil {
		fmt.Fprintln(os.Stderr, "error creating output directory:", err)
		os.Exit(1)
	}

	if err := seedAll(*outDir, manifest.Scenarios); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadManifest(path string) (Manifest, error) {
	if path == "" {
		return defaultManifest(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from CLI flag
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}

	if len(m.Scenarios) == 0 {
		return Manifest{}, fmt.Errorf("manifest %s has no scenarios", path)
	}

	return m, nil
}

// seedAll generates every scenario's bitset using up to one worker per CPU.
// Each worker generates one scenario at a time (generation of a single
// bitset is sequential); different workers' scenarios run concurrently.
func seedAll(outDir string, scenarios []Scenario) error {
	numWorkers := min(runtime.NumCPU(), len(scenarios))
	if numWorkers == 0 {
		return nil
	}

	work := make(chan Scenario, len(scenarios))
	for _, s := range scenarios {
		work <- s
	}
	close(work)

	errCh := make(chan error, numWorkers)
	resultCh := make(chan string, len(scenarios))

	for range numWorkers {
		go func() {
			for s := range work {
				path, err := seedOne(outDir, s)
				if err != nil {
					errCh <- fmt.Errorf("scenario %s: %w", s.Name, err)
					return
				}

				resultCh <- fmt.Sprintf("%s -> %s (%d values)", s.Name, path, s.Cardinality)
			}

			errCh <- nil
		}()
	}

	var firstErr error

	for range numWorkers {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	close(resultCh)

	for line := range resultCh {
		fmt.Println(line)
	}

	return firstErr
}

func seedOne(outDir string, s Scenario) (string, error) {
	m := roaring.New()
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9E3779B97F4A7C15))

	keySpace := s.KeySpace
	if keySpace <= 0 {
		keySpace = 1
	}

	switch s.Distribution {
	case "dense":
		fillDense(m, rng, s.Cardinality, keySpace)
	case "clustered":
		fillClustered(m, rng, s.Cardinality, keySpace)
	default: // "sparse"
		fillSparse(m, rng, s.Cardinality, keySpace)
	}

	path := filepath.Join(outDir, s.Name+".roaring")

	f, err := os.Create(path) //nolint:gosec // path built from scenario name under outDir
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if _, err := m.WriteTo(f); err != nil {
		return "", err
	}

	return path, nil
}

const blockCapacity = 1 << 16

// fillSparse scatters values uniformly across keySpace*blockCapacity,
// producing mostly array-representation blocks.
func fillSparse(m *roaring.Map, rng *rand.Rand, cardinality, keySpace int) {
	span := uint64(keySpace) * blockCapacity

	for i := 0; i < cardinality; i++ {
		m.Insert(uint32(rng.Uint64N(span)))
	}
}

// fillDense fills each of keySpace blocks near to capacity, producing
// bitmap-representation blocks.
func fillDense(m *roaring.Map, rng *rand.Rand, cardinality, keySpace int) {
	perBlock := cardinality / keySpace
	if perBlock > blockCapacity {
		perBlock = blockCapacity
	}

	for k := 0; k < keySpace; k++ {
		base := uint32(k) * blockCapacity

		for i := 0; i < perBlock; i++ {
			m.Insert(base + uint32(rng.Uint64N(blockCapacity)))
		}
	}
}

// fillClustered inserts contiguous runs, producing run-representation
// candidates once Optimize is called.
func fillClustered(m *roaring.Map, rng *rand.Rand, cardinality, keySpace int) {
	span := uint64(keySpace) * blockCapacity
	remaining := cardinality

	for remaining > 0 {
		runLen := 1 + rng.IntN(200)
		if runLen > remaining {
			runLen = remaining
		}

		start := rng.Uint64N(span - uint64(runLen))

		for i := 0; i < runLen; i++ {
			m.Insert(uint32(start + uint64(i)))
		}

		remaining -= runLen
	}
}
