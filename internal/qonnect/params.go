package qonnect

import (
	"fmt"
	"strings"
)

// GameParams describes a session: chain length, target endpoints and the
// physical knobs of the repeater scheme. LinkLifetime == 0 disables decay;
// GenProb and SwapProb of 1 make operations deterministic.
type GameParams struct {
	ChainLength  int     `json:"chain_length" schema:"chain_length,required"`
	EndpointA    int     `json:"endpoint_a" schema:"endpoint_a"`
	EndpointB    int     `json:"endpoint_b" schema:"endpoint_b"`
	LinkLifetime int     `json:"link_lifetime" schema:"link_lifetime"`
	GenProb      float64 `json:"gen_prob" schema:"gen_prob"`
	SwapProb     float64 `json:"swap_prob" schema:"swap_prob"`
}

func (p GameParams) Validate() error {
	if p.ChainLength < 2 {
		return fmt.Errorf("chain length must be at least 2, got %d", p.ChainLength)
	}
	if p.EndpointA < 0 || p.EndpointA >= p.ChainLength ||
		p.EndpointB < 0 || p.EndpointB >= p.ChainLength {
		return fmt.Errorf("endpoints (%d,%d) out of range for chain of %d",
			p.EndpointA, p.EndpointB, p.ChainLength)
	}
	if p.EndpointA == p.EndpointB {
		return fmt.Errorf("endpoints must be distinct, got %d twice", p.EndpointA)
	}
	if p.LinkLifetime < 0 {
		return fmt.Errorf("link lifetime must not be negative, got %d", p.LinkLifetime)
	}
	if p.GenProb < 0 || p.GenProb > 1 || p.SwapProb < 0 || p.SwapProb > 1 {
		return fmt.Errorf("probabilities must lie in [0,1], got %g and %g",
			p.GenProb, p.SwapProb)
	}
	return nil
}

// Seed is the string form of the params, usable as a stable identity for
// highscore grouping.
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d:%d:%g:%g",
		p.ChainLength, p.EndpointA, p.EndpointB, p.LinkLifetime, p.GenProb, p.SwapProb)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d %d %g %g",
		&p.ChainLength, &p.EndpointA, &p.EndpointB,
		&p.LinkLifetime, &p.GenProb, &p.SwapProb,
	)
	if n != 6 || err != nil {
		return nil, fmt.Errorf(`invalid game params seed %q (n = %d, err = %w)`, seed, n, err)
	}
	return p, nil
}
