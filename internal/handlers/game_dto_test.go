package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisq/qonnect-server/internal/qonnect"
)

func TestParseCreateGameDTODefaults(t *testing.T) {
	dto, err := ParseCreateGameDTO(url.Values{"chain_length": {"7"}})
	require.NoError(t, err)

	assert.Equal(t, qonnect.GameParams{
		ChainLength: 7,
		EndpointA:   0,
		EndpointB:   6,
		GenProb:     1,
		SwapProb:    1,
	}, dto.GameParams())
}

func TestParseCreateGameDTOOverrides(t *testing.T) {
	query := url.Values{
		"chain_length":  {"5"},
		"endpoint_a":    {"1"},
		"endpoint_b":    {"3"},
		"link_lifetime": {"30"},
		"gen_prob":      {"0.8"},
		"swap_prob":     {"0.5"},
		"extraneous":    {"ignored"},
	}
	dto, err := ParseCreateGameDTO(query)
	require.NoError(t, err)

	assert.Equal(t, qonnect.GameParams{
		ChainLength:  5,
		EndpointA:    1,
		EndpointB:    3,
		LinkLifetime: 30,
		GenProb:      0.8,
		SwapProb:     0.5,
	}, dto.GameParams())
}

func TestParseCreateGameDTORequiresChainLength(t *testing.T) {
	_, err := ParseCreateGameDTO(url.Values{"endpoint_a": {"0"}})
	assert.Error(t, err)
}

func TestParseMoveDTOs(t *testing.T) {
	gen, err := ParseGenerateDTO(url.Values{"i": {"1"}, "j": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, GenerateDTO{I: 1, J: 2}, gen)

	_, err = ParseGenerateDTO(url.Values{"i": {"1"}})
	assert.Error(t, err)

	swap, err := ParseSwapDTO(url.Values{
		"ai": {"0"}, "aj": {"1"}, "bi": {"1"}, "bj": {"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, SwapDTO{AI: 0, AJ: 1, BI: 1, BJ: 2}, swap)

	_, err = ParseSwapDTO(url.Values{"ai": {"0"}, "aj": {"1"}})
	assert.Error(t, err)
}
