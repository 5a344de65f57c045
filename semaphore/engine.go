// Package semaphore implements the membership proof engine: identity
// import, group snapshots and the protocol layer around an external
// zero-knowledge proving primitive.
package semaphore

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/semaphore-paymaster/go-paymaster/logger"
	"github.com/semaphore-paymaster/go-paymaster/types"
)

// Prover is the external zero-knowledge proving primitive. It receives
// the resolved identity and group and must return a proof whose scope
// and message equal the given values. Proof bytes may be randomized;
// only validity is reproducible.
type Prover interface {
	GenerateProof(ctx context.Context, identity *Identity, group *Group, message, scope *big.Int) (*types.PoolMembershipProof, error)
}

// ProofResult carries the generated proof together with the group and
// identity it was produced against, for caller-side diagnostics. The
// engine retains none of it.
type ProofResult struct {
	Proof    *types.PoolMembershipProof
	Group    *Group
	Identity *Identity
}

// Engine generates pool membership proofs.
type Engine struct {
	prover Prover
	log    zerolog.Logger
}

// NewEngine creates an engine around a proving primitive.
func NewEngine(prover Prover) *Engine {
	return &Engine{
		prover: prover,
		log:    logger.Logger().With().Str("component", "proof-engine").Logger(),
	}
}

// VerifyMembership reports whether the identity's commitment is a leaf
// of the group.
func VerifyMembership(identity *Identity, group *Group) bool {
	if identity == nil || group == nil {
		return false
	}
	_, ok := group.IndexOf(identity.Commitment())
	return ok
}

// GenerateProof produces a membership proof for the identity encoded in
// material, against the pool members in leaf order, bound to
// messageHash and scoped to poolID. All preconditions are checked
// before any cryptography runs.
func (e *Engine) GenerateProof(ctx context.Context, material []byte, poolMembers []*big.Int, messageHash, poolID *big.Int) (*ProofResult, error) {
	if err := validateProofRequest(material, poolMembers, messageHash, poolID); err != nil {
		return nil, err
	}

	decoded := DecodeIdentityMaterial(material)
	identity, err := NewIdentity(decoded.Export)
	if err != nil {
		return nil, err
	}

	group, err := NewGroup(poolMembers)
	if err != nil {
		return nil, err
	}

	leafIndex, ok := group.IndexOf(identity.Commitment())
	if !ok {
		return nil, errors.Wrapf(ErrNotAMember, "commitment %s", identity.Commitment())
	}
	e.log.Debug().
		Int("members", group.Size()).
		Int("leaf", leafIndex).
		Str("scope", poolID.String()).
		Msg("generating membership proof")

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	proof, err := e.prover.GenerateProof(ctx, identity, group, messageHash, poolID)
	if err != nil {
		return nil, errors.Wrap(err, "proving primitive failed")
	}
	if err = checkProofShape(proof); err != nil {
		return nil, err
	}
	if proof.Scope.Cmp(poolID) != 0 {
		return nil, errors.Wrapf(ErrInvalidProof, "scope %s does not match pool id %s", proof.Scope, poolID)
	}
	if proof.Message.Cmp(messageHash) != 0 {
		return nil, errors.Wrapf(ErrInvalidProof, "message %s does not match hash %s", proof.Message, messageHash)
	}

	return &ProofResult{Proof: proof, Group: group, Identity: identity}, nil
}

func validateProofRequest(material []byte, poolMembers []*big.Int, messageHash, poolID *big.Int) error {
	if len(material) == 0 {
		return errors.Wrap(ErrInvalidArgument, "identity material is empty")
	}
	if len(poolMembers) == 0 {
		return errors.Wrap(ErrInvalidArgument, "pool members are empty")
	}
	for i, m := range poolMembers {
		if m == nil || m.Sign() <= 0 {
			return errors.Wrapf(ErrInvalidArgument, "member commitment %d is not a positive integer", i)
		}
	}
	if messageHash == nil || messageHash.Sign() <= 0 {
		return errors.Wrap(ErrInvalidArgument, "message hash must be a positive integer")
	}
	if poolID == nil || poolID.Sign() < 0 {
		return errors.Wrap(ErrInvalidArgument, "pool id must be non-negative")
	}
	return nil
}

func checkProofShape(proof *types.PoolMembershipProof) error {
	if proof == nil {
		return errors.Wrap(ErrInvalidProof, "proof is nil")
	}
	if proof.MerkleTreeDepth < types.MinTreeDepth || proof.MerkleTreeDepth > types.MaxTreeDepth {
		return errors.Wrapf(ErrInvalidProof, "tree depth %d outside [%d, %d]", proof.MerkleTreeDepth, types.MinTreeDepth, types.MaxTreeDepth)
	}
	if proof.MerkleTreeRoot == nil || proof.Nullifier == nil || proof.Message == nil || proof.Scope == nil {
		return errors.Wrap(ErrInvalidProof, "proof has nil numeric fields")
	}
	for i, p := range proof.Points {
		if p == nil {
			return errors.Wrapf(ErrInvalidProof, "point %d is nil", i)
		}
	}
	return nil
}
