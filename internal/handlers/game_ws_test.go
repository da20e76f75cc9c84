package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisq/qonnect-server/internal/qonnect"
)

func newWsTestGame(t *testing.T) *qonnect.GameState {
	t.Helper()
	game, err := qonnect.NewGame(qonnect.GameParams{
		ChainLength: 4,
		EndpointA:   0,
		EndpointB:   3,
		GenProb:     1,
		SwapProb:    1,
	})
	require.NoError(t, err)
	return game
}

func TestExecuteCommand(t *testing.T) {
	game := newWsTestGame(t)

	for _, c := range []string{"g 0 1", "g 1 2", "s 0 1 1 2"} {
		require.NoError(t, executeCommand(game, nil, c))
	}
	assert.Equal(t, []qonnect.Link{{A: 0, B: 2}}, game.ActiveLinks())

	require.NoError(t, executeCommand(game, nil, "g 2 3"))
	require.NoError(t, executeCommand(game, nil, "s 0 2 2 3"))
	assert.True(t, game.IsWon())
}

func TestExecuteCommandRejectsMalformedInput(t *testing.T) {
	game := newWsTestGame(t)

	tests := []struct {
		name string
		c    string
	}{
		{"unknown command", "x 1 2"},
		{"too few arguments", "g 1"},
		{"too many arguments", "f 1"},
		{"non-integer argument", "g one 2"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, executeCommand(game, nil, test.c))
		})
	}
	assert.Empty(t, game.ActiveLinks())
}

func TestExecuteCommandSurfacesEngineErrors(t *testing.T) {
	game := newWsTestGame(t)

	err := executeCommand(game, nil, "g 0 2")
	assert.ErrorIs(t, err, qonnect.ErrIllegalGeneration)

	require.NoError(t, executeCommand(game, nil, "f"))
	err = executeCommand(game, nil, "g 0 1")
	assert.ErrorIs(t, err, qonnect.ErrSessionOver)
}

func TestEngineErrorStatus(t *testing.T) {
	game := newWsTestGame(t)

	_, dupErr := game.Apply(qonnect.Generate(0, 1), nil)
	require.NoError(t, dupErr)
	_, dupErr = game.Apply(qonnect.Generate(0, 1), nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate link", dupErr, 409},
		{"illegal generation", qonnect.ErrIllegalGeneration, 400},
		{"illegal swap", qonnect.ErrIllegalSwap, 400},
		{"missing link", qonnect.ErrMissingLink, 400},
		{"invalid link", qonnect.ErrInvalidLink, 400},
		{"session over", qonnect.ErrSessionOver, 409},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, engineErrorStatus(test.err))
		})
	}
}
