package qonnect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLink(t *testing.T) {
	tests := []struct {
		a, b int
		want Link
	}{
		{0, 1, Link{0, 1}},
		{1, 0, Link{0, 1}},
		{2, 6, Link{2, 6}},
		{6, 2, Link{2, 6}},
	}
	for _, test := range tests {
		l, err := NewLink(test.a, test.b)
		require.NoError(t, err)
		assert.Equal(t, test.want, l)
	}
}

func TestNewLinkRejectsMalformedPairs(t *testing.T) {
	for _, pair := range [][2]int{{0, 0}, {3, 3}, {-1, 2}, {2, -1}} {
		_, err := NewLink(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidLink, "pair %v", pair)
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	for _, l := range []Link{{0, 1}, {1, 0}, {4, 2}} {
		once := l.Canonical()
		assert.Equal(t, once, once.Canonical())
	}
}

func TestLinkSetOccupancy(t *testing.T) {
	s := make(LinkSet)

	require.NoError(t, s.Add(Link{0, 1}, 0))
	assert.True(t, s.Contains(Link{0, 1}))
	assert.True(t, s.Contains(Link{1, 0}), "containment must be symmetry-aware")

	err := s.Add(Link{1, 0}, 0)
	assert.ErrorIs(t, err, ErrDuplicateLink, "mirror cell counts as occupied")

	require.NoError(t, s.Remove(Link{1, 0}))
	assert.False(t, s.Contains(Link{0, 1}))

	err = s.Remove(Link{0, 1})
	assert.ErrorIs(t, err, ErrMissingLink)
}

func TestLinkSetLinksOrdered(t *testing.T) {
	s := make(LinkSet)
	for _, l := range []Link{{2, 3}, {0, 1}, {0, 3}, {1, 2}} {
		require.NoError(t, s.Add(l, 0))
	}
	assert.Equal(t,
		[]Link{{0, 1}, {0, 3}, {1, 2}, {2, 3}},
		s.Links(),
	)
}

func TestLinkSetAge(t *testing.T) {
	s := make(LinkSet)
	require.NoError(t, s.Add(Link{0, 1}, 1))
	require.NoError(t, s.Add(Link{1, 2}, 2))
	require.NoError(t, s.Add(Link{2, 3}, 0)) // immortal

	expired := s.age()
	assert.Equal(t, []Link{{0, 1}}, expired)
	assert.Equal(t, LinkSet{{1, 2}: 1, {2, 3}: 0}, s)

	expired = s.age()
	assert.Equal(t, []Link{{1, 2}}, expired)
	assert.Equal(t, LinkSet{{2, 3}: 0}, s)

	assert.Empty(t, s.age())
	assert.True(t, s.Contains(Link{2, 3}))
}

func TestSeedRoundTrip(t *testing.T) {
	p := GameParams{
		ChainLength:  7,
		EndpointA:    0,
		EndpointB:    6,
		LinkLifetime: 30,
		GenProb:      0.8,
		SwapProb:     0.75,
	}
	parsed, err := ParseSeed(p.Seed())
	require.NoError(t, err)
	assert.Equal(t, p, *parsed)

	_, err = ParseSeed("7:0:6")
	assert.Error(t, err)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
		ok     bool
	}{
		{
			name:   "minimal chain",
			params: GameParams{ChainLength: 2, EndpointA: 0, EndpointB: 1, GenProb: 1, SwapProb: 1},
			ok:     true,
		},
		{
			name:   "too short",
			params: GameParams{ChainLength: 1, EndpointA: 0, EndpointB: 0, GenProb: 1, SwapProb: 1},
			ok:     false,
		},
		{
			name:   "endpoint out of range",
			params: GameParams{ChainLength: 4, EndpointA: 0, EndpointB: 4, GenProb: 1, SwapProb: 1},
			ok:     false,
		},
		{
			name:   "equal endpoints",
			params: GameParams{ChainLength: 4, EndpointA: 2, EndpointB: 2, GenProb: 1, SwapProb: 1},
			ok:     false,
		},
		{
			name:   "bad probability",
			params: GameParams{ChainLength: 4, EndpointA: 0, EndpointB: 3, GenProb: 1.5, SwapProb: 1},
			ok:     false,
		},
		{
			name:   "negative lifetime",
			params: GameParams{ChainLength: 4, EndpointA: 0, EndpointB: 3, LinkLifetime: -1, GenProb: 1, SwapProb: 1},
			ok:     false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
