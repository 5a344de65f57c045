package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PaymasterContext is the caller-supplied description of how an
// operation should be paid: which paymaster contract, which pool, and
// the private identity material proving pool membership. It is decoded
// from the abi-encoded blob attached to ERC-7677 requests.
type PaymasterContext struct {
	PaymasterAddress common.Address
	PoolID           *big.Int
	IdentityBytes    []byte
}
