package roaring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/feb29/compacts/internal/oracle"
	"github.com/feb29/compacts/internal/testutil"
)

// applyOp drives both m and the reference model with the same Op and
// asserts their return values and membership answers agree.
func applyOp(t *testing.T, m *Map, model *oracle.Set, op testutil.Op) {
	t.Helper()

	switch op.Kind {
	case testutil.OpInsert:
		require.Equal(t, model.Insert(op.Value), m.Insert(op.Value), "Insert(%d)", op.Value)
	case testutil.OpRemove:
		require.Equal(t, model.Remove(op.Value), m.Remove(op.Value), "Remove(%d)", op.Value)
	case testutil.OpContains:
		require.Equal(t, model.Contains(op.Value), m.Contains(op.Value), "Contains(%d)", op.Value)
	case testutil.OpOptimize:
		m.Optimize()
	}
}

func runOpSequence(t *testing.T, fuzzBytes []byte) {
	t.Helper()

	m := New()
	model := oracle.New()

	gen := testutil.NewOpGenerator(fuzzBytes, testutil.DefaultOpGenConfig())

	const maxOps = 8000

	for i := 0; gen.HasMore() && i < maxOps; i++ {
		applyOp(t, m, model, gen.NextOp())
	}

	if diff := cmp.Diff(model.Sorted(), collectBits(m), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("final membership diverged from the reference model (-model +map):\n%s", diff)
	}

	require.Equal(t, uint64(model.Count()), m.Count())
}

func FuzzMapAgainstOracle(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	// Seed: enough inserts in one block to cross arrayThreshold, then an
	// Optimize, then removes to exercise demotion.
	insertsAcrossThreshold := make([]byte, 0, 5000*5+1+1000*5)
	for i := 0; i < 5000; i++ {
		insertsAcrossThreshold = append(insertsAcrossThreshold, 0, byte(i), byte(i>>8), 0, 0)
	}

	insertsAcrossThreshold = append(insertsAcrossThreshold, 99) // roll 99: Optimize

	for i := 4000; i < 5000; i++ { // roll 55: Remove, leaving 4000 values
		insertsAcrossThreshold = append(insertsAcrossThreshold, 55, byte(i), byte(i>>8), 0, 0)
	}
	f.Add(insertsAcrossThreshold)

	f.Fuzz(func(t *testing.T, fuzzBytes []byte) {
		runOpSequence(t, fuzzBytes)
	})
}

func TestMapAgainstOracleSeedCorpus(t *testing.T) {
	t.Parallel()

	seeds := [][]byte{
		{},
		{0, 0, 0, 0},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}

	for i, seed := range seeds {
		seed := seed

		t.Run(string(rune('A'+i)), func(t *testing.T) {
			t.Parallel()
			runOpSequence(t, seed)
		})
	}
}

func TestMapAgainstOracleTableOfSequences(t *testing.T) {
	t.Parallel()

	m := New()
	model := oracle.New()

	sequence := []testutil.Op{
		{Kind: testutil.OpInsert, Value: 1},
		{Kind: testutil.OpInsert, Value: 1 << 16},
		{Kind: testutil.OpInsert, Value: 1},
		{Kind: testutil.OpContains, Value: 1},
		{Kind: testutil.OpRemove, Value: 1},
		{Kind: testutil.OpContains, Value: 1},
		{Kind: testutil.OpOptimize},
		{Kind: testutil.OpInsert, Value: 5},
	}

	for _, op := range sequence {
		applyOp(t, m, model, op)
	}

	if diff := cmp.Diff(model.Sorted(), collectBits(m), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("final membership diverged from the reference model (-model +map):\n%s", diff)
	}
}
