package semaphore

import "github.com/pkg/errors"

var (
	// ErrEmptyGroup is returned when a group is built from no members.
	ErrEmptyGroup = errors.New("group has no members")
	// ErrInvalidIdentity is returned when identity material cannot be
	// imported as a private key export.
	ErrInvalidIdentity = errors.New("invalid identity material")
	// ErrInvalidArgument is returned by GenerateProof before any
	// cryptography runs when a precondition on its inputs fails.
	ErrInvalidArgument = errors.New("invalid proof request argument")
	// ErrNotAMember is returned when the identity's commitment is absent
	// from the pool. This is an expected, caller-meaningful condition
	// (stale membership, wrong pool), distinct from internal errors.
	ErrNotAMember = errors.New("identity is not a member of the pool")
	// ErrInvalidProof is returned when a proof fails structural checks.
	ErrInvalidProof = errors.New("proof is structurally invalid")
)
