package larray

import (
	"testing"

	"github.com/arloliu/larray/blob"
	"github.com/arloliu/larray/format"
	"github.com/arloliu/larray/section"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd(t *testing.T) {
	data := make([]float64, 6*8)
	for i := range data {
		data[i] = float64(i)
	}
	arr, err := New(data, []int{6, 8},
		WithAxisLabels("energy", "angle"),
		WithAxisUnits("eV", "deg"),
		WithAxisRanges([]float64{100, 110, 120, 130, 140, 150}, nil),
		WithDataLabel("intensity"),
		WithDataUnit("counts"),
		WithMetadata(map[string]any{"scan": "s042"}),
	)
	require.NoError(t, err)

	// Slice out one energy, rebin the remaining angle axis, then persist.
	cut, err := arr.Slice(At(3), All())
	require.NoError(t, err)
	require.Equal(t, []int{8}, cut.Shape())
	binned, err := cut.Rebin(2)
	require.NoError(t, err)
	require.Equal(t, []int{4}, binned.Shape())

	b, err := Encode(binned)
	require.NoError(t, err)
	restored, err := Decode(b.Bytes())
	require.NoError(t, err)

	require.Equal(t, binned.Shape(), restored.Shape())
	require.Equal(t, binned.Values(), restored.Values())
	require.Equal(t, binned.AxisLabels(), restored.AxisLabels())
	require.Equal(t, binned.AxisRanges(), restored.AxisRanges())
	require.Equal(t, "intensity", restored.DataLabel())
	require.Equal(t, "counts", restored.DataUnit())

	meta := restored.Metadata()
	require.Equal(t, "s042", meta["scan"])
	require.Equal(t,
		map[string]any{"label": "energy", "unit": "eV", "value": 130.0},
		meta["sliced_dim0"])
}

func TestEncodeUsesZstdLittleEndian(t *testing.T) {
	arr, err := New([]float64{1, 2, 3}, []int{3})
	require.NoError(t, err)

	b, err := Encode(arr)
	require.NoError(t, err)

	header, err := section.ParseHeader(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, header.Flag.Compression())
	require.False(t, header.Flag.IsBigEndian())
}

func TestDecodePairsWithAnyEncoder(t *testing.T) {
	arr, err := New([]float64{5, 6, 7, 8}, []int{2, 2},
		WithAxisLabels("row", "col"),
	)
	require.NoError(t, err)

	encoder, err := blob.NewEncoder(
		blob.WithBigEndian(),
		blob.WithDataCompression(format.CompressionLZ4),
	)
	require.NoError(t, err)
	b, err := encoder.Encode(arr)
	require.NoError(t, err)

	restored, err := Decode(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, arr.Values(), restored.Values())
	require.Equal(t, arr.AxisLabels(), restored.AxisLabels())
}
