package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func row(id string, parents ...string) GraphRow {
	r := GraphRow{CommitID: CommitId(id)}
	for _, p := range parents {
		r.Parents = append(r.Parents, CommitId(p))
	}
	return r
}

func TestCalculateGraphLayout_LinearHistory(t *testing.T) {
	rows := []GraphRow{
		row("c2", "c1"),
		row("c1", "c0"),
		row("c0"),
	}

	CalculateGraphLayout(rows)

	for i := range rows {
		assert.Equal(t, 0, rows[i].Visual.Column, "row %d column", i)
		assert.Equal(t, []bool{true}, rows[i].Visual.ActiveLanes, "row %d active lanes", i)
	}
	assert.Equal(t, []bool{true}, rows[0].Visual.ConnectorLanes)
	assert.Equal(t, []bool{true}, rows[1].Visual.ConnectorLanes)
	// The root has no parent to continue the lane.
	assert.Equal(t, []bool{false}, rows[2].Visual.ConnectorLanes)

	assert.Equal(t, []int{0}, rows[0].Visual.ParentColumns)
	assert.Equal(t, []int{0}, rows[1].Visual.ParentColumns)
	assert.Empty(t, rows[2].Visual.ParentColumns)
}

func TestCalculateGraphLayout_Fork(t *testing.T) {
	// c3 and c2 both fork off c1; c3 is encountered first.
	rows := []GraphRow{
		row("c3", "c1"),
		row("c2", "c1"),
		row("c1", "c0"),
	}

	CalculateGraphLayout(rows)

	assert.Equal(t, 0, rows[0].Visual.Column)
	assert.Equal(t, []int{0}, rows[0].Visual.ParentColumns)

	// c2 starts a new lane, but its parent was already placed in lane 0 by c3.
	assert.Equal(t, 1, rows[1].Visual.Column)
	assert.Equal(t, []int{0}, rows[1].Visual.ParentColumns)

	assert.Equal(t, 0, rows[2].Visual.Column)
}

func TestCalculateGraphLayout_Merge(t *testing.T) {
	rows := []GraphRow{
		row("m", "a", "b"),
		row("a", "r"),
		row("b", "r"),
		row("r"),
	}

	CalculateGraphLayout(rows)

	require.Equal(t, 0, rows[0].Visual.Column)
	require.Equal(t, []int{0, 1}, rows[0].Visual.ParentColumns)
	assert.Equal(t, 0, rows[0].Visual.ParentMin)
	assert.Equal(t, 1, rows[0].Visual.ParentMax)

	assert.Equal(t, 0, rows[1].Visual.Column)
	assert.Equal(t, 1, rows[2].Visual.Column)
	// Both branches converge on r, which was placed in lane 0 by a.
	assert.Equal(t, []int{0}, rows[2].Visual.ParentColumns)
	assert.Equal(t, 0, rows[3].Visual.Column)
}

func TestCalculateGraphLayout_EmptyAndSingle(t *testing.T) {
	CalculateGraphLayout(nil)

	single := []GraphRow{row("only")}
	CalculateGraphLayout(single)
	assert.Equal(t, 0, single[0].Visual.Column)
	assert.Equal(t, 0, single[0].Visual.ParentMin)
	assert.Equal(t, 0, single[0].Visual.ParentMax)
}

func TestCalculateGraphLayout_LaneReuse(t *testing.T) {
	// After the side branch terminates, its lane is reusable by a later head.
	rows := []GraphRow{
		row("a", "base"),
		row("b", "base"),
		row("base"),
		row("orphan"),
	}

	CalculateGraphLayout(rows)

	assert.Equal(t, 0, rows[0].Visual.Column)
	assert.Equal(t, 1, rows[1].Visual.Column)
	assert.Equal(t, 0, rows[2].Visual.Column)
	// Everything is freed by now, so the orphan head reuses lane 0.
	assert.Equal(t, 0, rows[3].Visual.Column)
}

func TestCalculateGraphLayout_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(t, "rows")
		rows := make([]GraphRow, n)
		for i := 0; i < n; i++ {
			rows[i] = row(fmt.Sprintf("c%d", i))
			// Parents only point at rows that appear later (older commits).
			if i < n-1 {
				parents := rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("parents%d", i))
				for p := 0; p < parents; p++ {
					idx := rapid.IntRange(i+1, n-1).Draw(t, fmt.Sprintf("parent%d_%d", i, p))
					rows[i].Parents = append(rows[i].Parents, CommitId(fmt.Sprintf("c%d", idx)))
				}
			}
		}

		first := make([]GraphRow, n)
		second := make([]GraphRow, n)
		copy(first, rows)
		copy(second, rows)

		CalculateGraphLayout(first)
		CalculateGraphLayout(second)

		for i := range first {
			require.Equal(t, first[i].Visual, second[i].Visual, "row %d", i)
			require.Less(t, first[i].Visual.Column, n, "lane index bounded by total rows")
			require.LessOrEqual(t, first[i].Visual.ParentMin, first[i].Visual.Column)
			require.GreaterOrEqual(t, first[i].Visual.ParentMax, first[i].Visual.Column)
		}
	})
}
