// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UCLA-VAST/minimap2-acceleration/internal/app"
	"github.com/UCLA-VAST/minimap2-acceleration/internal/synthapp"
	"github.com/UCLA-VAST/minimap2-acceleration/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// synthFile writes a generated workload and returns its path.
func synthFile(t *testing.T, args ...string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "anchors.txt")
	var errB bytes.Buffer
	if code := synthapp.RunContext(context.Background(), append(args, "-out", fn), &bytes.Buffer{}, &errB); code != 0 {
		t.Fatalf("synth exit %d: %s", code, errB.String())
	}
	return fn
}

func run(t *testing.T, args ...string) (string, string) {
	t.Helper()
	var out, errB bytes.Buffer
	if code := app.Run(args, &out, &errB); code != 0 {
		t.Fatalf("exit %d: %s", code, errB.String())
	}
	return out.String(), errB.String()
}

const worked = `3 0 5000 5000 500
1 0 10 0
1 10 8 10
1 20 6 19
EOR
0 15 5000 5000 500
EOR
`

func TestEndToEndText(t *testing.T) {
	fn := write(t, "w.txt", worked)
	out, _ := run(t, "-q", fn)
	want := "3\n10\t-1\n18\t0\n24\t1\nEOR\n0\nEOR\n"
	if out != want {
		t.Fatalf("got\n%q\nwant\n%q", out, want)
	}
}

func TestGzipInputAndJSON(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(worked))
	_ = zw.Close()
	fn := write(t, "w.txt.gz", gz.String())

	out, _ := run(t, "-q", "-o", "json", fn)
	var got []api.ResultV1
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0].N != 3 || got[1].N != 0 || got[1].Scores == nil {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestBackendsAndLaneCountsAgree(t *testing.T) {
	fn := synthFile(t, "-queries", "40", "-anchors", "300", "-seed", "11")

	ref, _ := run(t, "-q", "-b", "direct", "-t", "1", fn)
	for _, args := range [][]string{
		{"-b", "direct", "-t", "4"},
		{"-b", "lanes", "-l", "1", "-t", "1"},
		{"-b", "lanes", "-l", "8", "-t", "4"},
		{"-b", "lanes", "-l", "16", "-batch-size", "65"},
		{"-b", "lanes", "-l", "3", "-batch-size", "1"},
	} {
		out, _ := run(t, append(append([]string{"-q"}, args...), fn)...)
		if out != ref {
			t.Fatalf("%v output differs from direct backend", args)
		}
	}
}

func TestChecksumMatchesAcrossBackends(t *testing.T) {
	fn := synthFile(t, "-queries", "25", "-seed", "5")
	sum := func(backend string) string {
		_, stderr := run(t, "-q", "-checksum", "-b", backend, "-o", "tsv", fn)
		for _, line := range strings.Split(stderr, "\n") {
			if strings.HasPrefix(line, "checksum\t") {
				return line
			}
		}
		t.Fatalf("no checksum in stderr: %q", stderr)
		return ""
	}
	if a, b := sum("lanes"), sum("direct"); a != b {
		t.Fatalf("checksums differ: %q vs %q", a, b)
	}
}

func TestRunSummaryLogged(t *testing.T) {
	fn := write(t, "w.txt", worked)
	_, stderr := run(t, "-verbose", fn)
	if !strings.Contains(stderr, "msg=done") || !strings.Contains(stderr, "queries=2") {
		t.Fatalf("missing summary: %s", stderr)
	}
}

func TestExitCodes(t *testing.T) {
	truncated := write(t, "t.txt", "3 10 1 1 1\n1 1 1 1\n")
	tests := []struct {
		args []string
		code int
	}{
		{[]string{"-o", "fasta"}, 2},
		{[]string{filepath.Join(t.TempDir(), "missing.txt")}, 2},
		{[]string{truncated}, 2},
		{[]string{"-h"}, 0},
		{[]string{"-version"}, 0},
	}
	for _, tc := range tests {
		var out, errB bytes.Buffer
		if code := app.Run(tc.args, &out, &errB); code != tc.code {
			t.Fatalf("%v: exit %d, want %d (%s)", tc.args, code, tc.code, errB.String())
		}
	}
}

func TestCtrlCExit130(t *testing.T) {
	fn := synthFile(t, "-queries", "200", "-anchors", "2000")
	for _, backend := range []string{"lanes", "direct"} {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var out, errB bytes.Buffer
		code := app.RunContext(ctx, []string{"-b", backend, fn}, &out, &errB)
		if code != 130 {
			t.Fatalf("%s: expected exit 130 on cancel, got %d (%s)", backend, code, errB.String())
		}
	}
}

func TestMixedLimitsWarn(t *testing.T) {
	mixed := worked + "2 15 1 1 1\n1 0 10 0\n1 1 10 1\nEOR\n"
	fn := write(t, "m.txt", mixed)
	_, stderr := run(t, "-l", "2", fn)
	if !strings.Contains(stderr, "WARN:") {
		t.Fatalf("expected limits warning, got %q", stderr)
	}
	_, stderr = run(t, "-b", "direct", fn)
	if strings.Contains(stderr, "WARN: 1 queries") {
		t.Fatalf("direct backend should not warn: %q", stderr)
	}
}

func TestStdinDash(t *testing.T) {
	// "-" must be accepted as a positional; with an empty stdin there is
	// nothing to chain.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	_ = w.Close()
	old := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = old; _ = r.Close() }()

	out, _ := run(t, "-q", "-")
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}
