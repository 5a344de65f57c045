// Package contract exposes the on-chain reads of the pool paymaster
// contract over a minimal blockchain caller interface.
package contract

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/semaphore-paymaster/go-paymaster/types"
)

//go:generate mockgen -destination=mock/blockchainCallerMock.go . BlockchainCaller

// BlockchainCaller is an interface to call a smart contract. It is
// satisfied by *ethclient.Client.
type BlockchainCaller interface {
	// Call smart contract. For read operation.
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// PaymasterABI is the parsed form of PaymasterABIJSON.
var PaymasterABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(PaymasterABIJSON))
	if err != nil {
		panic("contract: invalid paymaster abi: " + err.Error())
	}
	PaymasterABI = parsed
}

// RootHistoryInfo describes the ring-buffer pointer of one pool: the
// slot holding the current root, the root itself, and the ring size.
type RootHistoryInfo struct {
	CurrentIndex uint32
	CurrentRoot  *big.Int
	Size         uint32
}

// Caller wraps a paymaster contract deployment for typed read calls.
type Caller struct {
	caller  BlockchainCaller
	address common.Address
}

// NewCaller creates a typed caller bound to the paymaster deployed at
// address.
func NewCaller(c BlockchainCaller, address common.Address) *Caller {
	return &Caller{caller: c, address: address}
}

// Address returns the bound contract address.
func (c *Caller) Address() common.Address {
	return c.address
}

// GetMessageHash asks the contract for the 256-bit message the
// membership proof must sign for the given operation.
func (c *Caller) GetMessageHash(ctx context.Context, userOp *types.PackedUserOperation) (*big.Int, error) {
	if userOp == nil {
		return nil, errors.New("user operation is nil")
	}
	out, err := c.call(ctx, "getMessageHash", *userOp)
	if err != nil {
		return nil, err
	}
	hash, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.New("getMessageHash returned a non-uint256 value")
	}
	return hash, nil
}

// FindRootIndex asks the contract to locate root in the pool's root
// history ring. found is false when the root has been evicted or never
// existed.
func (c *Caller) FindRootIndex(ctx context.Context, poolID, root *big.Int) (uint32, bool, error) {
	out, err := c.call(ctx, "findRootIndex", poolID, root)
	if err != nil {
		return 0, false, err
	}
	index, ok := out[0].(uint32)
	if !ok {
		return 0, false, errors.New("findRootIndex returned a non-uint32 index")
	}
	found, ok := out[1].(bool)
	if !ok {
		return 0, false, errors.New("findRootIndex returned a non-bool flag")
	}
	return index, found, nil
}

// GetPoolRootHistoryInfo returns the pool's current ring-buffer pointer.
func (c *Caller) GetPoolRootHistoryInfo(ctx context.Context, poolID *big.Int) (*RootHistoryInfo, error) {
	out, err := c.call(ctx, "getPoolRootHistoryInfo", poolID)
	if err != nil {
		return nil, err
	}
	currentIndex, ok := out[0].(uint32)
	if !ok {
		return nil, errors.New("getPoolRootHistoryInfo returned a non-uint32 index")
	}
	currentRoot, ok := out[1].(*big.Int)
	if !ok {
		return nil, errors.New("getPoolRootHistoryInfo returned a non-uint256 root")
	}
	size, ok := out[2].(uint32)
	if !ok {
		return nil, errors.New("getPoolRootHistoryInfo returned a non-uint32 size")
	}
	return &RootHistoryInfo{CurrentIndex: currentIndex, CurrentRoot: currentRoot, Size: size}, nil
}

func (c *Caller) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := PaymasterABI.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "wrong arguments were provided for %s", method)
	}
	res, err := c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &c.address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s call failed", method)
	}
	out, err := PaymasterABI.Unpack(method, res)
	if err != nil {
		return nil, errors.Wrapf(err, "%s returned an unexpected shape", method)
	}
	return out, nil
}

// Dial connects to an RPC endpoint and returns a client usable as a
// BlockchainCaller.
func Dial(rpcURL string) (*ethclient.Client, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to RPC %s", rpcURL)
	}
	return client, nil
}
