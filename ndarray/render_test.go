package ndarray

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	arr, err := New(arange(6), []int{2, 3},
		WithAxisLabels("row", "col"),
		WithAxisUnits("", "mm"),
		WithAxisRangeMap(map[int][]float64{0: nil, 1: {5, 6, 7}}),
		WithDataLabel("intensity"),
		WithDataUnit("counts"),
		WithMetadata(map[string]any{"scan": "s001", "beamline": "P21"}),
	)
	require.NoError(t, err)

	want := `ndarray.Array "intensity" [counts] shape=[2 3]
  axis 0: label="row" unit="" range=<none>
  axis 1: label="col" unit="mm" range=[5 6 7]
  values=[0 1 2 3 4 5]
  metadata:
    beamline=P21
    scan=s001
`
	require.Equal(t, want, arr.Render())
	// Stringer goes through Render.
	require.Equal(t, want, arr.String())
}

func TestRenderDeterministic(t *testing.T) {
	arr, err := New(arange(4), []int{4},
		WithMetadata(map[string]any{"z": 1, "a": 2, "m": 3, "b": 4}),
	)
	require.NoError(t, err)

	first := arr.Render()
	for i := 0; i < 20; i++ {
		require.Equal(t, first, arr.Render())
	}
}

func TestRenderElidesLongBuffers(t *testing.T) {
	arr, err := New(arange(100), []int{100})
	require.NoError(t, err)

	out := arr.Render()
	require.Contains(t, out, "values=[0 1 2 3 4 5 6 7 ... (100 total)]")
	require.Contains(t, out, "range=[0 1 2 3 4 5 6 7 ... (100 total)]")
	require.NotContains(t, out, "99")
}

func TestRenderMinimal(t *testing.T) {
	arr, err := New(arange(2), []int{2})
	require.NoError(t, err)

	out := arr.Render()
	require.True(t, strings.HasPrefix(out, "ndarray.Array shape=[2]\n"))
	require.NotContains(t, out, "metadata:")
}
