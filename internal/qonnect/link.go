// Package qonnect implements the game state of a swapping-based
// quantum-repeater puzzle. Repeaters 0..N-1 form a chain; the board is the
// N×N adjacency grid with reflection symmetry about the diagonal, and every
// entangled link occupies one canonical cell above the diagonal.
package qonnect

import (
	"fmt"
	"sort"
)

// Link is an unordered pair of repeater indices. It is kept in canonical
// form (A < B), so {i,j} and its mirror {j,i} compare equal.
type Link struct {
	A, B int
}

// NewLink canonicalizes the pair {a,b}. Self-loops and negative indices
// are malformed regardless of chain length.
func NewLink(a, b int) (Link, error) {
	if a < 0 || b < 0 {
		return Link{}, fmt.Errorf("%w: negative repeater index (%d,%d)", ErrInvalidLink, a, b)
	}
	if a == b {
		return Link{}, fmt.Errorf("%w: (%d,%d) is a self-loop", ErrInvalidLink, a, b)
	}
	if b < a {
		a, b = b, a
	}
	return Link{a, b}, nil
}

// Canonical returns the mirror-normalized form of l. It is idempotent and
// tolerates links built by hand with A > B.
func (l Link) Canonical() Link {
	if l.B < l.A {
		return Link{l.B, l.A}
	}
	return l
}

func (l Link) Has(n int) bool {
	return l.A == n || l.B == n
}

// Other returns the endpoint of l that is not n.
func (l Link) Other(n int) int {
	if l.A == n {
		return l.B
	}
	return l.A
}

func (l Link) String() string {
	return fmt.Sprintf("(%d,%d)", l.A, l.B)
}

// sharedNode reports the repeater common to both links. The second return
// is false when the links are disjoint. Callers must rule out a == b first.
func sharedNode(a, b Link) (int, bool) {
	if b.Has(a.A) {
		return a.A, true
	}
	if b.Has(a.B) {
		return a.B, true
	}
	return 0, false
}

// LinkSet is the set of active links keyed by canonical cell, each mapped
// to its remaining lifetime in moves. A value of zero means the link never
// decays (sessions created with LinkLifetime == 0).
type LinkSet map[Link]int

func (s LinkSet) Contains(l Link) bool {
	_, ok := s[l.Canonical()]
	return ok
}

// Add places l on its canonical cell. At most one link may occupy a cell.
func (s LinkSet) Add(l Link, lifetime int) error {
	l = l.Canonical()
	if _, ok := s[l]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLink, l)
	}
	s[l] = lifetime
	return nil
}

func (s LinkSet) Remove(l Link) error {
	l = l.Canonical()
	if _, ok := s[l]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingLink, l)
	}
	delete(s, l)
	return nil
}

// Links returns the active links ordered by cell, for stable rendering.
func (s LinkSet) Links() []Link {
	links := make([]Link, 0, len(s))
	for l := range s {
		links = append(links, l)
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].A != links[j].A {
			return links[i].A < links[j].A
		}
		return links[i].B < links[j].B
	})
	return links
}

// age advances time by one move: every decaying link loses one lifetime
// unit and links that reach zero are removed. Returns the expired links.
func (s LinkSet) age() []Link {
	var expired []Link
	for l, life := range s {
		if life <= 0 {
			continue
		}
		if life == 1 {
			expired = append(expired, l)
			delete(s, l)
		} else {
			s[l] = life - 1
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		if expired[i].A != expired[j].A {
			return expired[i].A < expired[j].A
		}
		return expired[i].B < expired[j].B
	})
	return expired
}
