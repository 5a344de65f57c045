package semaphore

import (
	"context"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/semaphore-paymaster/go-paymaster/types"
)

// fakeProver returns a well-formed proof bound to the requested message
// and scope, recording how often it ran.
type fakeProver struct {
	calls int
	err   error
}

func (f *fakeProver) GenerateProof(_ context.Context, _ *Identity, group *Group, message, scope *big.Int) (*types.PoolMembershipProof, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	root, err := group.Root()
	if err != nil {
		return nil, err
	}
	proof := &types.PoolMembershipProof{
		MerkleTreeDepth: uint64(group.Depth()),
		MerkleTreeRoot:  root,
		Nullifier:       big.NewInt(424242),
		Message:         new(big.Int).Set(message),
		Scope:           new(big.Int).Set(scope),
	}
	for i := range proof.Points {
		proof.Points[i] = big.NewInt(int64(i + 1))
	}
	return proof, nil
}

// misbehavingProver ignores the requested scope.
type misbehavingProver struct{}

func (misbehavingProver) GenerateProof(_ context.Context, _ *Identity, _ *Group, message, _ *big.Int) (*types.PoolMembershipProof, error) {
	proof := &types.PoolMembershipProof{
		MerkleTreeDepth: 1,
		MerkleTreeRoot:  big.NewInt(1),
		Nullifier:       big.NewInt(2),
		Message:         new(big.Int).Set(message),
		Scope:           big.NewInt(999999),
	}
	for i := range proof.Points {
		proof.Points[i] = big.NewInt(1)
	}
	return proof, nil
}

func memberSet(t *testing.T, extra int, commitment *big.Int) []*big.Int {
	t.Helper()
	members := make([]*big.Int, 0, extra+1)
	for i := 0; i < extra; i++ {
		members = append(members, big.NewInt(int64(i+1)))
	}
	return append(members, commitment)
}

func TestGenerateProofValidatesBeforeCrypto(t *testing.T) {
	messageHash := big.NewInt(0xabc)
	poolID := big.NewInt(1)
	members := []*big.Int{big.NewInt(111)}

	tests := []struct {
		name     string
		material []byte
		members  []*big.Int
		message  *big.Int
		poolID   *big.Int
	}{
		{name: "empty material", material: nil, members: members, message: messageHash, poolID: poolID},
		{name: "empty members", material: []byte("id"), members: nil, message: messageHash, poolID: poolID},
		{name: "zero commitment", material: []byte("id"), members: []*big.Int{big.NewInt(0)}, message: messageHash, poolID: poolID},
		{name: "nil commitment", material: []byte("id"), members: []*big.Int{nil}, message: messageHash, poolID: poolID},
		{name: "zero message", material: []byte("id"), members: members, message: big.NewInt(0), poolID: poolID},
		{name: "nil message", material: []byte("id"), members: members, message: nil, poolID: poolID},
		{name: "negative pool id", material: []byte("id"), members: members, message: messageHash, poolID: big.NewInt(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prover := &fakeProver{}
			engine := NewEngine(prover)
			_, err := engine.GenerateProof(context.Background(), tt.material, tt.members, tt.message, tt.poolID)
			require.ErrorIs(t, err, ErrInvalidArgument)
			require.Zero(t, prover.calls, "prover must not run on invalid input")
		})
	}
}

func TestGenerateProofRejectsNonMember(t *testing.T) {
	prover := &fakeProver{}
	engine := NewEngine(prover)

	_, err := engine.GenerateProof(
		context.Background(),
		[]byte(testKeyExport(1)),
		[]*big.Int{big.NewInt(111), big.NewInt(222), big.NewInt(333)},
		big.NewInt(0xabc),
		big.NewInt(1),
	)
	require.ErrorIs(t, err, ErrNotAMember)
	require.NotErrorIs(t, err, ErrInvalidArgument)
	require.Zero(t, prover.calls)
}

func TestGenerateProofMembershipSizes(t *testing.T) {
	export := testKeyExport(9)
	id, err := NewIdentity(export)
	require.NoError(t, err)

	for _, extra := range []int{0, 1, 999} {
		members := memberSet(t, extra, id.Commitment())

		prover := &fakeProver{}
		engine := NewEngine(prover)
		result, err := engine.GenerateProof(context.Background(), []byte(export), members, big.NewInt(0xabc), big.NewInt(1))
		require.NoError(t, err, "group size %d", extra+1)
		require.Equal(t, 1, prover.calls)
		require.Equal(t, extra+1, result.Group.Size())
		require.Zero(t, result.Proof.Scope.Cmp(big.NewInt(1)))
		require.Zero(t, result.Proof.Message.Cmp(big.NewInt(0xabc)))
		require.True(t, VerifyMembership(result.Identity, result.Group))
	}
}

func TestGenerateProofInvalidIdentityMaterial(t *testing.T) {
	prover := &fakeProver{}
	engine := NewEngine(prover)

	_, err := engine.GenerateProof(
		context.Background(),
		[]byte("!!definitely-not-an-export!!"),
		[]*big.Int{big.NewInt(111)},
		big.NewInt(0xabc),
		big.NewInt(1),
	)
	require.ErrorIs(t, err, ErrInvalidIdentity)
	require.Zero(t, prover.calls)
}

func TestGenerateProofSurfacesProverFailure(t *testing.T) {
	export := testKeyExport(5)
	id, err := NewIdentity(export)
	require.NoError(t, err)

	proverErr := errors.New("witness computation failed")
	engine := NewEngine(&fakeProver{err: proverErr})
	_, err = engine.GenerateProof(context.Background(), []byte(export), []*big.Int{id.Commitment()}, big.NewInt(0xabc), big.NewInt(1))
	require.ErrorIs(t, err, proverErr)
}

func TestGenerateProofRejectsMisboundProof(t *testing.T) {
	export := testKeyExport(5)
	id, err := NewIdentity(export)
	require.NoError(t, err)

	engine := NewEngine(misbehavingProver{})
	_, err = engine.GenerateProof(context.Background(), []byte(export), []*big.Int{id.Commitment()}, big.NewInt(0xabc), big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestGenerateProofHonorsCancellation(t *testing.T) {
	export := testKeyExport(5)
	id, err := NewIdentity(export)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prover := &fakeProver{}
	engine := NewEngine(prover)
	_, err = engine.GenerateProof(ctx, []byte(export), []*big.Int{id.Commitment()}, big.NewInt(0xabc), big.NewInt(1))
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, prover.calls)
}
