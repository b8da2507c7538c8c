package synthapp

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UCLA-VAST/minimap2-acceleration/core/anchorio"
)

func TestGeneratesReadableDump(t *testing.T) {
	var out, errb bytes.Buffer
	code := RunContext(context.Background(), []string{"-queries", "7", "-anchors", "30", "-seed", "3"}, &out, &errb)
	require.Equal(t, 0, code, errb.String())
	assert.Contains(t, errb.String(), "generated")

	qs, err := anchorio.ReadAll(anchorio.NewReader(&out, "synth"))
	require.NoError(t, err)
	require.Len(t, qs, 7)
}

func TestGzipFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "w.txt.gz")
	code := RunContext(context.Background(), []string{"-queries", "4", "-out", p}, io.Discard, io.Discard)
	require.Equal(t, 0, code)

	rc, err := anchorio.Open(p)
	require.NoError(t, err)
	defer rc.Close()
	qs, err := anchorio.ReadAll(anchorio.NewReader(rc, p))
	require.NoError(t, err)
	require.Len(t, qs, 4)
}

func TestUsageAndVersion(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, 0, RunContext(context.Background(), []string{"-h"}, &out, io.Discard))
	assert.Contains(t, out.String(), "-queries")

	out.Reset()
	require.Equal(t, 0, RunContext(context.Background(), []string{"-v"}, &out, io.Discard))
	assert.True(t, strings.HasPrefix(out.String(), "mm2chain-synth version"))

	require.Equal(t, 2, RunContext(context.Background(), []string{"-tags", "0"}, io.Discard, io.Discard))
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, 130, RunContext(ctx, []string{"-queries", "1000"}, io.Discard, io.Discard))
}
