// Package paymaster composes the codec, root selection and proof engine
// into the two ERC-7677 protocol operations: stub data for gas
// estimation and real data carrying a valid membership proof.
package paymaster

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/semaphore-paymaster/go-paymaster/types"
)

// PostOpGasLimit is the gas reserved for the paymaster's postOp call.
const PostOpGasLimit = 65000

var (
	// ErrMissingContext is returned when no paymaster context was supplied.
	ErrMissingContext = errors.New("paymaster context is required")
	// ErrMissingSender is returned when the operation has no sender.
	ErrMissingSender = errors.New("sender is required")
	// ErrMissingEntryPoint is returned when no entry point was supplied.
	ErrMissingEntryPoint = errors.New("entry point address is required")
	// ErrMissingIdentity is returned when the decoded context carries no
	// identity material.
	ErrMissingIdentity = errors.New("paymaster context carries no identity")
	// ErrUnsupportedOperation is returned for pre-v0.7 operations that
	// deploy their account via initCode. Rejection is deterministic.
	ErrUnsupportedOperation = errors.New("operations with init code are not supported")
)

// Params is the input of both protocol operations, mirroring the
// ERC-7677 pm_getPaymasterStubData / pm_getPaymasterData parameters.
type Params struct {
	UserOperation *types.PackedUserOperation
	EntryPoint    common.Address
	ChainID       *big.Int
	Context       []byte
}

// SponsorInfo names the sponsor shown by wallets during estimation.
type SponsorInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// StubDataResult is the estimation-time result. IsFinal is always false
// here: stub data must be replaced by GetPaymasterData before
// submission and is never valid for execution.
type StubDataResult struct {
	Paymaster               common.Address `json:"paymaster"`
	PaymasterData           hexutil.Bytes  `json:"paymasterData"`
	PaymasterPostOpGasLimit *big.Int       `json:"paymasterPostOpGasLimit"`
	Sponsor                 *SponsorInfo   `json:"sponsor,omitempty"`
	IsFinal                 bool           `json:"isFinal"`
}

// DataResult is the submission-ready result of GetPaymasterData.
type DataResult struct {
	Paymaster     common.Address `json:"paymaster"`
	PaymasterData hexutil.Bytes  `json:"paymasterData"`
}

func validateParams(params *Params) error {
	if params == nil || len(params.Context) == 0 {
		return ErrMissingContext
	}
	if params.UserOperation == nil || params.UserOperation.Sender == (common.Address{}) {
		return ErrMissingSender
	}
	if params.EntryPoint == (common.Address{}) {
		return ErrMissingEntryPoint
	}
	return nil
}
