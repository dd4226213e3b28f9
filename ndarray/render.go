package ndarray

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxRenderValues bounds how many buffer elements and range values Render
// prints before eliding the rest.
const maxRenderValues = 8

// Render returns a deterministic human-readable description of the array:
// data label/unit, shape, the per-axis metadata, the leading buffer values,
// and the free-form metadata with sorted keys. Output depends only on the
// array state, never on machine or process, so it is safe to diff in logs
// and tests. It is a debugging aid, not part of the persistence contract.
func (a *Array) Render() string {
	var b strings.Builder

	b.WriteString("ndarray.Array")
	if a.dataLabel != "" {
		fmt.Fprintf(&b, " %q", a.dataLabel)
	}
	if a.dataUnit != "" {
		fmt.Fprintf(&b, " [%s]", a.dataUnit)
	}
	fmt.Fprintf(&b, " shape=%v\n", a.shape)

	for d := 0; d < a.NDim(); d++ {
		fmt.Fprintf(&b, "  axis %d: label=%q unit=%q range=%s\n",
			d, a.axes.labels[d], a.axes.units[d], formatRange(a.axes.ranges[d]))
	}

	b.WriteString("  values=")
	b.WriteString(formatValues(a.data))
	b.WriteString("\n")

	if len(a.meta) > 0 {
		keys := make([]string, 0, len(a.meta))
		for k := range a.meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("  metadata:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "    %s=%v\n", k, a.meta[k])
		}
	}

	return b.String()
}

// String implements fmt.Stringer using Render.
func (a *Array) String() string {
	return a.Render()
}

func formatRange(r []float64) string {
	if r == nil {
		return "<none>"
	}

	return formatValues(r)
}

func formatValues(vals []float64) string {
	var b strings.Builder
	b.WriteString("[")
	n := len(vals)
	shown := n
	if shown > maxRenderValues {
		shown = maxRenderValues
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strconv.FormatFloat(vals[i], 'g', -1, 64))
	}
	if n > shown {
		fmt.Fprintf(&b, " ... (%d total)", n)
	}
	b.WriteString("]")

	return b.String()
}
