package cli_test

import (
	"os"
	"strconv"
	"testing"

	"github.com/feb29/compacts/internal/cli"
)

func TestRepairOnWellFormedFile(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	values := make([]string, 300)
	for v := range values {
		values[v] = strconv.Itoa(v)
	}

	c.MustRun(append([]string{"insert"}, values...)...)

	stdout := c.MustRun("repair")
	cli.AssertContains(t, stdout, "ok: 300 value(s)")

	// repair rewrites in optimized form; the file must still read back
	// with every value intact.
	stdout = c.MustRun("stat")
	cli.AssertContains(t, stdout, "count:  300")
}

func TestRepairDryRunDoesNotRewrite(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("insert", "1", "2", "3")

	before, err := os.ReadFile(c.Dir + "/bitset.roaring")
	if err != nil {
		t.Fatalf("reading bitset: %v", err)
	}

	stdout := c.MustRun("repair", "--dry-run")
	cli.AssertContains(t, stdout, "ok: 3 value(s)")

	after, err := os.ReadFile(c.Dir + "/bitset.roaring")
	if err != nil {
		t.Fatalf("reading bitset: %v", err)
	}

	if string(before) != string(after) {
		t.Errorf("--dry-run must not rewrite the file")
	}
}

func TestRepairOnMalformedFileWarns(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	if err := os.WriteFile(c.Dir+"/bitset.roaring", []byte{0xDE, 0xAD, 0xBE, 0xEF}, 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, stderr, code := c.Run("repair")
	if code == 0 {
		t.Fatalf("expected non-zero exit for a malformed bitset file")
	}

	if stdout != "" {
		t.Errorf("stdout should be empty on malformed input, got %q", stdout)
	}

	cli.AssertContains(t, stderr, "cannot be auto-repaired")
}

func TestRepairOnMissingFile(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("repair")
	cli.AssertContains(t, stderr, "no such file")
}
