package types

import "math/big"

// ProofPoints is the number of field elements forming a packed
// groth16 proof: A (2), B (4) and C (2).
const ProofPoints = 8

// MinTreeDepth and MaxTreeDepth bound the merkle tree depth accepted
// by the on-chain verifier.
const (
	MinTreeDepth = 1
	MaxTreeDepth = 32
)

// PoolMembershipProof is a zero-knowledge proof that some member of a
// pool authorized the operation carried in Message, without revealing
// which member. Scope binds the proof to a single pool, Nullifier
// prevents replay of the same proof under the same scope.
type PoolMembershipProof struct {
	MerkleTreeDepth uint64
	MerkleTreeRoot  *big.Int
	Nullifier       *big.Int
	Message         *big.Int
	Scope           *big.Int
	Points          [ProofPoints]*big.Int
}
