package cmd

import (
	"bytes"
	"context"
	"github.com/Borislavv/go-lcg48/internal/oracle"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// execute runs the root command with args. Flags keep their values between runs, so every
// test passes the flags it depends on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--config", writeEmptyConfig(t)))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeEmptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lcg48.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

// TestCapture_ReproducesGolden verifies the captured stream equals the golden one.
func TestCapture_ReproducesGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.txt")
	_, err := execute(t, "capture", "--seed=985456376", "--mult=0", "--position=0", "--streams=1",
		"--count=200", "--out="+path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	rc, err := oracle.GoldenSource(oracle.DefaultGolden)()
	require.NoError(t, err)
	defer rc.Close()
	want, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, string(want), string(got))
}

// TestValidate_PassAndFail verifies the exit status follows the report.
func TestValidate_PassAndFail(t *testing.T) {
	_, err := execute(t, "validate", "--seed=985456376", "--mult=0", "--position=0", "--streams=1", "--lanes=4")
	require.NoError(t, err)

	_, err = execute(t, "validate", "--seed=1", "--mult=0", "--position=0", "--streams=1", "--lanes=2")
	require.ErrorIs(t, err, errValidationFailed)
}

// TestValidate_CapturedReference certifies a non-default stream through a captured file.
func TestValidate_CapturedReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.txt")
	_, err := execute(t, "capture", "--seed=7", "--mult=2", "--position=3", "--streams=4", "--count=200", "--out="+path)
	require.NoError(t, err)

	_, err = execute(t, "validate", "--seed=7", "--mult=2", "--position=3", "--streams=4", "--lanes=8", "--reference="+path)
	require.NoError(t, err)
}

// TestGenerate_ScalarAndResume verifies printed values and checkpoint continuity.
func TestGenerate_ScalarAndResume(t *testing.T) {
	out, err := execute(t, "generate", "--seed=985456376", "--mult=0", "--position=0", "--streams=1",
		"--lanes=0", "--kind=int", "--count=3", "--checkpoint=", "--resume=")
	require.NoError(t, err)
	require.Equal(t, "1519318098\n2086130914\n1878113605\n", out)

	state := filepath.Join(t.TempDir(), "run.state")
	_, err = execute(t, "generate", "--seed=985456376", "--mult=0", "--position=0", "--streams=1",
		"--lanes=0", "--kind=int", "--count=2", "--checkpoint="+state, "--resume=")
	require.NoError(t, err)

	out, err = execute(t, "generate", "--lanes=0", "--kind=int", "--count=3", "--checkpoint=", "--resume="+state)
	require.NoError(t, err)
	require.Equal(t, "1878113605\n1419836879\n383352379\n", out)
}

// TestGenerate_Family prints one column per lane.
func TestGenerate_Family(t *testing.T) {
	out, err := execute(t, "generate", "--seed=985456376", "--mult=3", "--lanes=8", "--kind=int", "--count=1",
		"--checkpoint=", "--resume=")
	require.NoError(t, err)

	fields := bytes.Fields([]byte(out))
	require.Len(t, fields, 8)
	require.Equal(t, "316283494", string(fields[5]))

	_, err = execute(t, "generate", "--lanes=3", "--kind=int", "--count=1", "--checkpoint=", "--resume=")
	require.Error(t, err)

	_, err = execute(t, "generate", "--lanes=0", "--kind=bogus", "--checkpoint=", "--resume=")
	require.Error(t, err)
}

// TestBench_Runs verifies the bench command completes with agreeing checksums.
func TestBench_Runs(t *testing.T) {
	_, err := execute(t, "bench", "--seed=11", "--mult=1", "--iterations=2000", "--lanes=4")
	require.NoError(t, err)
}

// TestGenerate_Paced verifies rows still come out complete under a rate limit.
func TestGenerate_Paced(t *testing.T) {
	out, err := execute(t, "generate", "--seed=985456376", "--mult=0", "--position=0", "--streams=1",
		"--lanes=0", "--kind=int", "--count=3", "--checkpoint=", "--resume=", "--rate=1000")
	require.NoError(t, err)
	require.Equal(t, "1519318098\n2086130914\n1878113605\n", out)
}
