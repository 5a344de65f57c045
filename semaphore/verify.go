package semaphore

import (
	rapidsnark "github.com/iden3/go-rapidsnark/types"
	"github.com/iden3/go-rapidsnark/verifier"
	"github.com/pkg/errors"

	"github.com/semaphore-paymaster/go-paymaster/types"
)

// VerifyProof checks a membership proof against a groth16 verification
// key. The packed uint256[8] point layout is
// [A.x, A.y, B.x1, B.x0, B.y1, B.y0, C.x, C.y]; B coordinates are
// swapped back into the verifier's Fp2 convention.
func VerifyProof(proof *types.PoolMembershipProof, verificationKey []byte) error {
	if err := checkProofShape(proof); err != nil {
		return err
	}
	if len(verificationKey) == 0 {
		return errors.New("verification key is empty")
	}

	zkp := rapidsnark.ZKProof{
		Proof: &rapidsnark.ProofData{
			A: []string{
				proof.Points[0].String(),
				proof.Points[1].String(),
				"1",
			},
			B: [][]string{
				{proof.Points[3].String(), proof.Points[2].String()},
				{proof.Points[5].String(), proof.Points[4].String()},
				{"1", "0"},
			},
			C: []string{
				proof.Points[6].String(),
				proof.Points[7].String(),
				"1",
			},
			Protocol: "groth16",
		},
		PubSignals: []string{
			proof.MerkleTreeRoot.String(),
			proof.Nullifier.String(),
			proof.Message.String(),
			proof.Scope.String(),
		},
	}

	if err := verifier.VerifyGroth16(zkp, verificationKey); err != nil {
		return errors.Wrap(err, "groth16 verification failed")
	}
	return nil
}
