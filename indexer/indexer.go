// Package indexer fetches pool membership and root history data from an
// off-chain subgraph. It is the data-fetch collaborator of the protocol
// engine and owns the only caching in this library.
package indexer

import (
	"context"
	"math/big"
)

//go:generate mockgen -destination=mock/clientMock.go . Client

// Member is one pool member as recorded by the indexer. Index is the
// on-chain insertion position and defines the merkle leaf layout.
type Member struct {
	IdentityCommitment *big.Int
	Index              uint64
}

// RootEntry is an (index, root) pair from a pool's root history ring.
type RootEntry struct {
	Index uint32
	Root  *big.Int
}

// Client is the read interface over the indexer. GetPoolMembers must
// return members ordered by Index ascending; FindRootIndex returns nil
// without error when the root is unknown.
type Client interface {
	GetPoolMembers(ctx context.Context, poolID *big.Int) ([]Member, error)
	FindRootIndex(ctx context.Context, poolID, root *big.Int) (*RootEntry, error)
}
