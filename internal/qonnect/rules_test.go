package qonnect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T, n int) *GameState {
	t.Helper()
	g, err := NewGame(GameParams{
		ChainLength: n,
		EndpointA:   0,
		EndpointB:   n - 1,
		GenProb:     1,
		SwapProb:    1,
	})
	require.NoError(t, err)
	return g
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestCanGenerateChainAdjacencyOnly(t *testing.T) {
	g := newTestGame(t, 5)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := abs(i-j) == 1
			assert.Equal(t, want, g.CanGenerate(i, j), "cell (%d,%d)", i, j)
		}
	}
}

func TestCanGenerateOccupiedCell(t *testing.T) {
	g := newTestGame(t, 5)
	_, err := g.Apply(Generate(1, 2), nil)
	require.NoError(t, err)

	assert.False(t, g.CanGenerate(1, 2))
	assert.False(t, g.CanGenerate(2, 1), "mirror cell is the same cell")
	assert.True(t, g.CanGenerate(2, 3))

	_, err = g.Apply(Generate(2, 1), nil)
	assert.ErrorIs(t, err, ErrDuplicateLink)
}

func TestGenerateOutOfRange(t *testing.T) {
	g := newTestGame(t, 4)
	_, err := g.Apply(Generate(3, 4), nil)
	assert.ErrorIs(t, err, ErrInvalidLink)
}

func TestGenerateNotAdjacent(t *testing.T) {
	g := newTestGame(t, 4)
	_, err := g.Apply(Generate(0, 2), nil)
	assert.ErrorIs(t, err, ErrIllegalGeneration)
}

// All four endpoint orderings of a swap must resolve to the same merge,
// regardless of which coordinate names the shared repeater.
func TestSwapOrientations(t *testing.T) {
	const i, j, k = 0, 1, 2
	pairs := [][2]Link{
		{{i, j}, {j, k}},
		{{j, i}, {j, k}},
		{{i, j}, {k, j}},
		{{j, i}, {k, j}},
	}
	for _, pair := range pairs {
		g := newTestGame(t, 4)
		require.NoError(t, g.Links.Add(Link{i, j}, 0))
		require.NoError(t, g.Links.Add(Link{j, k}, 0))

		res, err := g.Apply(Swap(pair[0], pair[1]), nil)
		require.NoError(t, err, "swap %s + %s", pair[0], pair[1])
		require.NotNil(t, res.Placed)
		assert.Equal(t, Link{i, k}, *res.Placed)
		assert.Equal(t, []Link{{i, k}}, g.ActiveLinks())
	}
}

func TestSwapRejectsSelfMerge(t *testing.T) {
	g := newTestGame(t, 4)
	require.NoError(t, g.Links.Add(Link{0, 1}, 0))

	_, err := g.Apply(Swap(Link{0, 1}, Link{0, 1}), nil)
	assert.ErrorIs(t, err, ErrIllegalSwap)

	// The mirror image names the same link.
	_, err = g.Apply(Swap(Link{0, 1}, Link{1, 0}), nil)
	assert.ErrorIs(t, err, ErrIllegalSwap)
}

func TestSwapRejectsDisjointLinks(t *testing.T) {
	g := newTestGame(t, 4)
	require.NoError(t, g.Links.Add(Link{0, 1}, 0))
	require.NoError(t, g.Links.Add(Link{2, 3}, 0))

	_, err := g.Apply(Swap(Link{0, 1}, Link{2, 3}), nil)
	assert.ErrorIs(t, err, ErrIllegalSwap)
}

func TestSwapRejectsMissingInput(t *testing.T) {
	g := newTestGame(t, 4)
	require.NoError(t, g.Links.Add(Link{0, 1}, 0))

	_, err := g.Apply(Swap(Link{0, 1}, Link{1, 2}), nil)
	assert.ErrorIs(t, err, ErrMissingLink)
}

func TestSwapRejectsOccupiedResult(t *testing.T) {
	g := newTestGame(t, 4)
	require.NoError(t, g.Links.Add(Link{0, 1}, 0))
	require.NoError(t, g.Links.Add(Link{1, 2}, 0))
	require.NoError(t, g.Links.Add(Link{0, 2}, 0))

	_, err := g.Apply(Swap(Link{0, 1}, Link{1, 2}), nil)
	assert.ErrorIs(t, err, ErrDuplicateLink)
}

func TestCanSwapPredicate(t *testing.T) {
	g := newTestGame(t, 4)
	require.NoError(t, g.Links.Add(Link{0, 1}, 0))
	require.NoError(t, g.Links.Add(Link{1, 2}, 0))
	require.NoError(t, g.Links.Add(Link{2, 3}, 0))

	assert.True(t, g.CanSwap(Link{0, 1}, Link{1, 2}))
	assert.True(t, g.CanSwap(Link{1, 0}, Link{2, 1}), "orientation must not matter")
	assert.False(t, g.CanSwap(Link{0, 1}, Link{2, 3}))
	assert.False(t, g.CanSwap(Link{0, 1}, Link{0, 1}))

	// Predicates never mutate.
	assert.Equal(t, []Link{{0, 1}, {1, 2}, {2, 3}}, g.ActiveLinks())
	assert.Equal(t, 0, g.MoveCount)
}
