package semaphore

import (
	"math/big"
	"math/bits"

	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/pkg/errors"

	"github.com/semaphore-paymaster/go-paymaster/types"
)

// Group is an ordered, immutable snapshot of the identity commitments
// of one pool. Member order matters: it defines the merkle leaf layout
// and must match on-chain insertion order.
type Group struct {
	members []*big.Int
	indexOf map[string]int
}

// NewGroup builds a group snapshot from commitments in leaf order.
func NewGroup(members []*big.Int) (*Group, error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}
	g := &Group{
		members: make([]*big.Int, len(members)),
		indexOf: make(map[string]int, len(members)),
	}
	for i, m := range members {
		if m == nil {
			return nil, errors.Wrapf(ErrInvalidArgument, "member %d is nil", i)
		}
		g.members[i] = new(big.Int).Set(m)
		g.indexOf[m.String()] = i
	}
	return g, nil
}

// Size returns the number of members.
func (g *Group) Size() int {
	return len(g.members)
}

// Members returns the commitments in leaf order.
func (g *Group) Members() []*big.Int {
	out := make([]*big.Int, len(g.members))
	for i, m := range g.members {
		out[i] = new(big.Int).Set(m)
	}
	return out
}

// IndexOf returns the leaf position of a commitment.
func (g *Group) IndexOf(commitment *big.Int) (int, bool) {
	if commitment == nil {
		return 0, false
	}
	i, ok := g.indexOf[commitment.String()]
	return i, ok
}

// Depth returns the merkle tree depth for this group size, clamped to
// the verifier's accepted range.
func (g *Group) Depth() int {
	n := len(g.members)
	depth := bits.Len(uint(n - 1))
	if depth < types.MinTreeDepth {
		depth = types.MinTreeDepth
	}
	if depth > types.MaxTreeDepth {
		depth = types.MaxTreeDepth
	}
	return depth
}

// Root computes the lean incremental merkle tree root over the member
// commitments: pairs are hashed with poseidon, an unpaired node is
// promoted to the next level unchanged.
func (g *Group) Root() (*big.Int, error) {
	level := g.members
	for len(level) > 1 {
		next := make([]*big.Int, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			h, err := poseidon.Hash([]*big.Int{level[i], level[i+1]})
			if err != nil {
				return nil, errors.Wrap(err, "hashing merkle level")
			}
			next = append(next, h)
		}
		level = next
	}
	return new(big.Int).Set(level[0]), nil
}
