package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PackedUserOperation is an ERC-4337 EntryPoint v0.7 user operation in
// its packed on-chain form. AccountGasLimits packs verification and
// call gas limits, GasFees packs maxPriorityFeePerGas and maxFeePerGas.
type PackedUserOperation struct {
	Sender             common.Address `json:"sender"`
	Nonce              *big.Int       `json:"nonce"`
	InitCode           []byte         `json:"initCode"`
	CallData           []byte         `json:"callData"`
	AccountGasLimits   [32]byte       `json:"accountGasLimits"`
	PreVerificationGas *big.Int       `json:"preVerificationGas"`
	GasFees            [32]byte       `json:"gasFees"`
	PaymasterAndData   []byte         `json:"paymasterAndData"`
	Signature          []byte         `json:"signature"`
}

// HasInitCode reports whether the operation deploys its sender account,
// the pre-v0.7 style flow this library does not sponsor.
func (op *PackedUserOperation) HasInitCode() bool {
	return len(op.InitCode) > 0
}

// MarshalJSON renders byte fields as 0x-prefixed hex, matching the
// bundler RPC convention.
func (op *PackedUserOperation) MarshalJSON() ([]byte, error) {
	type packedUserOperationJSON struct {
		Sender             common.Address `json:"sender"`
		Nonce              *hexutil.Big   `json:"nonce"`
		InitCode           hexutil.Bytes  `json:"initCode"`
		CallData           hexutil.Bytes  `json:"callData"`
		AccountGasLimits   hexutil.Bytes  `json:"accountGasLimits"`
		PreVerificationGas *hexutil.Big   `json:"preVerificationGas"`
		GasFees            hexutil.Bytes  `json:"gasFees"`
		PaymasterAndData   hexutil.Bytes  `json:"paymasterAndData"`
		Signature          hexutil.Bytes  `json:"signature"`
	}
	enc := packedUserOperationJSON{
		Sender:             op.Sender,
		Nonce:              (*hexutil.Big)(op.Nonce),
		InitCode:           op.InitCode,
		CallData:           op.CallData,
		AccountGasLimits:   op.AccountGasLimits[:],
		PreVerificationGas: (*hexutil.Big)(op.PreVerificationGas),
		GasFees:            op.GasFees[:],
		PaymasterAndData:   op.PaymasterAndData,
		Signature:          op.Signature,
	}
	return json.Marshal(&enc)
}
