package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UCLA-VAST/minimap2-acceleration/core/chain"
	"github.com/UCLA-VAST/minimap2-acceleration/pkg/api"
)

var sample = chain.Result{ID: 3, Scores: []int32{10, 18, 24}, Parents: []int32{-1, 0, 1}}

func TestWriteRecord(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteRecord(&b, sample))
	require.NoError(t, WriteRecord(&b, chain.Result{ID: 4}))
	require.Equal(t, "3\n10\t-1\n18\t0\n24\t1\nEOR\n0\nEOR\n", b.String())
}

func TestWriteTSVRows(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteTSVRows(&b, sample))
	require.Equal(t, "3\t0\t10\t-1\n3\t1\t18\t0\n3\t2\t24\t1\n", b.String())
}

func TestWriteJSONEmptySlices(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteJSON(&b, []chain.Result{sample, {ID: 4}}))
	var got []api.ResultV1
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, api.ResultV1{Query: 3, N: 3, Scores: []int32{10, 18, 24}, Parents: []int32{-1, 0, 1}}, got[0])
	require.Contains(t, b.String(), `"scores": []`)
}
