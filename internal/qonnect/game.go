package qonnect

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

type MoveKind int

const (
	GenerateMove MoveKind = iota
	SwapMove
)

// Move is a tagged request from the presentation layer. Generation uses
// the I/J cell, swapping the A/B links; the unused fields are ignored.
type Move struct {
	Kind MoveKind
	I, J int
	A, B Link
}

func Generate(i, j int) Move {
	return Move{Kind: GenerateMove, I: i, J: j}
}

func Swap(a, b Link) Move {
	return Move{Kind: SwapMove, A: a, B: b}
}

// MoveRecord is one applied move in the session history.
type MoveRecord struct {
	Kind   MoveKind
	Cell   Link    // cell written: the generated link or the swap result
	Inputs [2]Link // swap inputs, zero for generation
}

// String renders the record the way the original side panel did,
// with 1-based repeater numbers.
func (m MoveRecord) String() string {
	if m.Kind == GenerateMove {
		return fmt.Sprintf("Entangle (%d,%d)", m.Cell.A+1, m.Cell.B+1)
	}
	return fmt.Sprintf("Swap (%d,%d) and (%d,%d)",
		m.Inputs[0].A+1, m.Inputs[0].B+1, m.Inputs[1].A+1, m.Inputs[1].B+1)
}

// MoveResult reports what a legal move did to the board. A fizzled move is
// one that passed validation but failed its probability roll (or lost an
// input link to decay); it consumes a time step and places nothing.
type MoveResult struct {
	Fizzled bool
	Placed  *Link
	Expired []Link
}

// GameState is a single puzzle session. It is mutated only through Apply
// and Forfeit; a failed move leaves every field untouched.
type GameState struct {
	GameParams
	Target    Link
	Links     LinkSet
	Moves     []MoveRecord
	MoveCount int
	Won       bool
	Over      bool
}

func NewGame(params GameParams) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	target, err := NewLink(params.EndpointA, params.EndpointB)
	if err != nil {
		return nil, err
	}
	return &GameState{
		GameParams: params,
		Target:     target,
		Links:      make(LinkSet),
	}, nil
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (g GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *GameState) IsWon() bool {
	return g.Won
}

// ActiveLinks returns the current links in canonical cell order.
func (g *GameState) ActiveLinks() []Link {
	return g.Links.Links()
}

// Forfeit ends the session without a win. Idempotent; a won session
// stays won.
func (g *GameState) Forfeit() {
	g.Over = true
}

// Apply validates and resolves one move. All validation happens against
// the pre-move state; only once the move is known to be legal does time
// advance (decaying links age by one) and the board change.
func (g *GameState) Apply(m Move, r *rand.Rand) (*MoveResult, error) {
	if g.Over {
		return nil, ErrSessionOver
	}
	switch m.Kind {
	case GenerateMove:
		return g.applyGenerate(m.I, m.J, r)
	case SwapMove:
		return g.applySwap(m.A, m.B, r)
	default:
		return nil, fmt.Errorf("unknown move kind %d", m.Kind)
	}
}

// link canonicalizes (a,b) and bounds-checks it against the chain.
func (g *GameState) link(a, b int) (Link, error) {
	l, err := NewLink(a, b)
	if err != nil {
		return Link{}, err
	}
	if l.B >= g.ChainLength {
		return Link{}, fmt.Errorf("%w: repeater %d outside chain of %d",
			ErrInvalidLink, l.B, g.ChainLength)
	}
	return l, nil
}

func (g *GameState) validateGenerate(i, j int) (Link, error) {
	l, err := g.link(i, j)
	if err != nil {
		return Link{}, err
	}
	if l.B-l.A != 1 {
		return Link{}, fmt.Errorf("%w: %s", ErrIllegalGeneration, l)
	}
	if g.Links.Contains(l) {
		return Link{}, fmt.Errorf("%w: %s", ErrDuplicateLink, l)
	}
	return l, nil
}

// CanGenerate reports whether placing a link at (i,j) would currently be
// legal. Pure predicate for UI highlighting; no mutation.
func (g *GameState) CanGenerate(i, j int) bool {
	if g.Over {
		return false
	}
	_, err := g.validateGenerate(i, j)
	return err == nil
}

func (g *GameState) applyGenerate(i, j int, r *rand.Rand) (*MoveResult, error) {
	l, err := g.validateGenerate(i, j)
	if err != nil {
		return nil, err
	}

	res := &MoveResult{Expired: g.ageLinks()}
	g.MoveCount++

	if !roll(g.GenProb, r) {
		res.Fizzled = true
		return res, nil
	}

	g.Links[l] = g.LinkLifetime
	g.Moves = append(g.Moves, MoveRecord{Kind: GenerateMove, Cell: l})
	res.Placed = &l
	g.checkWin()
	return res, nil
}

// mergeLinks computes the swap result. Both inputs must already be
// canonical. One shared repeater is required; the result connects the two
// non-shared endpoints.
func mergeLinks(a, b Link) (Link, error) {
	if a == b {
		return Link{}, fmt.Errorf("%w: cannot merge a link with itself", ErrIllegalSwap)
	}
	s, ok := sharedNode(a, b)
	if !ok {
		return Link{}, fmt.Errorf("%w: %s and %s have no common repeater", ErrIllegalSwap, a, b)
	}
	p, q := a.Other(s), b.Other(s)
	if p == q {
		// Unreachable for distinct canonical links, checked anyway.
		return Link{}, fmt.Errorf("%w: merge collapses to repeater %d", ErrIllegalSwap, p)
	}
	return NewLink(p, q)
}

func (g *GameState) validateSwap(a, b Link) (ca, cb, merged Link, err error) {
	if ca, err = g.link(a.A, a.B); err != nil {
		return
	}
	if cb, err = g.link(b.A, b.B); err != nil {
		return
	}
	if merged, err = mergeLinks(ca, cb); err != nil {
		return
	}
	if !g.Links.Contains(ca) {
		err = fmt.Errorf("%w: %s", ErrMissingLink, ca)
		return
	}
	if !g.Links.Contains(cb) {
		err = fmt.Errorf("%w: %s", ErrMissingLink, cb)
		return
	}
	// The result never coincides with an input, so any occupant of the
	// result cell is a conflict.
	if g.Links.Contains(merged) {
		err = fmt.Errorf("%w: %s", ErrDuplicateLink, merged)
	}
	return
}

// CanSwap reports whether merging a and b would currently be legal.
// Pure predicate for UI highlighting; no mutation.
func (g *GameState) CanSwap(a, b Link) bool {
	if g.Over {
		return false
	}
	_, _, _, err := g.validateSwap(a, b)
	return err == nil
}

func (g *GameState) applySwap(a, b Link, r *rand.Rand) (*MoveResult, error) {
	ca, cb, merged, err := g.validateSwap(a, b)
	if err != nil {
		return nil, err
	}

	res := &MoveResult{Expired: g.ageLinks()}
	g.MoveCount++

	// An input may have just decayed; the attempt is then spent with no
	// merge, like a failed roll.
	if !g.Links.Contains(ca) || !g.Links.Contains(cb) || !roll(g.SwapProb, r) {
		res.Fizzled = true
		return res, nil
	}

	lifetime := 0
	if g.LinkLifetime > 0 {
		lifetime = (g.Links[ca] + g.Links[cb]) / 2
	}
	delete(g.Links, ca)
	delete(g.Links, cb)
	g.Links[merged] = lifetime
	g.Moves = append(g.Moves, MoveRecord{
		Kind:   SwapMove,
		Cell:   merged,
		Inputs: [2]Link{ca, cb},
	})
	res.Placed = &merged
	g.checkWin()
	return res, nil
}

// ageLinks advances time by one move unless decay is disabled.
func (g *GameState) ageLinks() []Link {
	if g.LinkLifetime == 0 {
		return nil
	}
	return g.Links.age()
}

func (g *GameState) checkWin() {
	if g.Links.Contains(g.Target) {
		g.Won = true
		g.Over = true
	}
}

// roll decides a probabilistic operation. A nil rand makes every roll with
// nonzero probability succeed, which keeps the engine deterministic for
// callers that do not care about the physical knobs.
func roll(p float64, r *rand.Rand) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	if r == nil {
		return true
	}
	return r.Float64() < p
}
