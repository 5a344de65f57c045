// Package codec implements the binary protocol layer shared with the
// on-chain paymaster contract: the abi-encoded paymaster context, the
// bit-packed config word and the final paymasterData blob. Every layout
// here must match Solidity abi.encode byte for byte; a silent mismatch
// corrupts on-chain calls.
package codec

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/semaphore-paymaster/go-paymaster/types"
)

const (
	// RootHistorySize is the length of the contract's merkle root
	// history ring buffer. Config words may only reference indices
	// below it.
	RootHistorySize = 64

	// ConfigLength and PoolIDLength are the fixed widths of the two
	// leading paymasterData slots.
	ConfigLength = 32
	PoolIDLength = 32

	// ProofLength is the abi.encode size of the 6-field proof tuple:
	// five uint256 words plus a uint256[8] fixed array.
	ProofLength = 13 * 32

	// PaymasterDataLength is the exact size of the blob this codec
	// produces: config ‖ poolId ‖ encoded proof.
	PaymasterDataLength = ConfigLength + PoolIDLength + ProofLength
)

var (
	// ErrInvalidInput reports caller-supplied values that cannot be encoded.
	ErrInvalidInput = errors.New("invalid encoding input")
	// ErrMalformedContext reports context bytes that do not decode as the
	// (address, uint256, bytes) tuple.
	ErrMalformedContext = errors.New("malformed paymaster context")
	// ErrOutOfRange reports a merkle root index outside the ring buffer.
	ErrOutOfRange = errors.New("merkle root index out of range")
	// ErrMalformedConfig reports a config word with nonzero reserved bits
	// or an out-of-range index.
	ErrMalformedConfig = errors.New("malformed config word")
)

// Mode selects between real validation data and gas-estimation stub data.
type Mode uint8

const (
	// ModeValidation marks data carrying a real membership proof.
	ModeValidation Mode = 0
	// ModeGasEstimation marks stub data used only for gas estimation.
	ModeGasEstimation Mode = 1
)

func (m Mode) String() string {
	if m == ModeGasEstimation {
		return "gas-estimation"
	}
	return "validation"
}

// modeBit is bit 32 of the config word.
var modeBit = new(uint256.Int).Lsh(uint256.NewInt(1), 32)

// abi types for the context tuple and the proof tuple.
var (
	addressTy, _ = abi.NewType("address", "", nil)
	uint256Ty, _ = abi.NewType("uint256", "", nil)
	bytesTy, _   = abi.NewType("bytes", "", nil)

	proofTy, _ = abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "merkleTreeDepth", Type: "uint256"},
		{Name: "merkleTreeRoot", Type: "uint256"},
		{Name: "nullifier", Type: "uint256"},
		{Name: "message", Type: "uint256"},
		{Name: "scope", Type: "uint256"},
		{Name: "points", Type: "uint256[8]"},
	})

	contextArgs = abi.Arguments{{Type: addressTy}, {Type: uint256Ty}, {Type: bytesTy}}
	proofArgs   = abi.Arguments{{Type: proofTy}}
)

// proofTuple mirrors the Solidity proof struct for abi packing.
type proofTuple struct {
	MerkleTreeDepth *big.Int
	MerkleTreeRoot  *big.Int
	Nullifier       *big.Int
	Message         *big.Int
	Scope           *big.Int
	Points          [types.ProofPoints]*big.Int
}

// EncodePaymasterContext abi-encodes (address, uint256 poolId, bytes
// identity) where identity is the UTF-8 form of the caller's identity
// export string.
func EncodePaymasterContext(paymaster common.Address, poolID *big.Int, identity string) ([]byte, error) {
	if poolID == nil || poolID.Sign() < 0 || poolID.BitLen() > 256 {
		return nil, errors.Wrap(ErrInvalidInput, "pool id must be an unsigned 256-bit integer")
	}
	if identity == "" {
		return nil, errors.Wrap(ErrInvalidInput, "identity string is empty")
	}
	packed, err := contextArgs.Pack(paymaster, poolID, []byte(identity))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	return packed, nil
}

// ParsePaymasterContext decodes the (address, uint256, bytes) tuple
// produced by EncodePaymasterContext.
func ParsePaymasterContext(data []byte) (*types.PaymasterContext, error) {
	values, err := contextArgs.Unpack(data)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedContext, err.Error())
	}
	if len(values) != 3 {
		return nil, errors.Wrapf(ErrMalformedContext, "expected 3-tuple, got %d values", len(values))
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return nil, errors.Wrap(ErrMalformedContext, "first element is not an address")
	}
	poolID, ok := values[1].(*big.Int)
	if !ok {
		return nil, errors.Wrap(ErrMalformedContext, "second element is not a uint256")
	}
	identity, ok := values[2].([]byte)
	if !ok {
		return nil, errors.Wrap(ErrMalformedContext, "third element is not bytes")
	}
	return &types.PaymasterContext{
		PaymasterAddress: addr,
		PoolID:           poolID,
		IdentityBytes:    identity,
	}, nil
}

// EncodeConfig packs the root index and mode into the 256-bit config
// word: bits 0-31 carry the index, bit 32 the mode, the rest stay zero.
func EncodeConfig(merkleRootIndex uint32, mode Mode) (*uint256.Int, error) {
	if merkleRootIndex >= RootHistorySize {
		return nil, errors.Wrapf(ErrOutOfRange, "index %d, ring size %d", merkleRootIndex, RootHistorySize)
	}
	cfg := uint256.NewInt(uint64(merkleRootIndex))
	if mode == ModeGasEstimation {
		cfg.Or(cfg, modeBit)
	}
	return cfg, nil
}

// DecodeConfig unpacks a config word, rejecting nonzero reserved bits
// and out-of-range indices.
func DecodeConfig(cfg *uint256.Int) (uint32, Mode, error) {
	if cfg == nil {
		return 0, ModeValidation, errors.Wrap(ErrMalformedConfig, "config word is nil")
	}
	if reserved := new(uint256.Int).Rsh(cfg, 33); !reserved.IsZero() {
		return 0, ModeValidation, errors.Wrap(ErrMalformedConfig, "reserved bits are set")
	}
	index := uint32(cfg.Uint64() & 0xFFFFFFFF)
	if index >= RootHistorySize {
		return 0, ModeValidation, errors.Wrapf(ErrMalformedConfig, "index %d exceeds ring size %d", index, RootHistorySize)
	}
	mode := ModeValidation
	if !new(uint256.Int).And(cfg, modeBit).IsZero() {
		mode = ModeGasEstimation
	}
	return index, mode, nil
}

// GeneratePaymasterData assembles the on-chain blob:
// config(32) ‖ poolId(32) ‖ abi.encode(proof). The proof is assumed to
// be structurally valid; only the index and pool id are checked here.
func GeneratePaymasterData(mode Mode, poolID *big.Int, proof *types.PoolMembershipProof, merkleRootIndex uint32) ([]byte, error) {
	cfg, err := EncodeConfig(merkleRootIndex, mode)
	if err != nil {
		return nil, err
	}
	if poolID == nil || poolID.Sign() < 0 {
		return nil, errors.Wrap(ErrInvalidInput, "pool id must be an unsigned 256-bit integer")
	}
	pool, overflow := uint256.FromBig(poolID)
	if overflow {
		return nil, errors.Wrap(ErrInvalidInput, "pool id must be an unsigned 256-bit integer")
	}

	encodedProof, err := encodeProof(proof)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, PaymasterDataLength)
	cfgBytes := cfg.Bytes32()
	poolBytes := pool.Bytes32()
	data = append(data, cfgBytes[:]...)
	data = append(data, poolBytes[:]...)
	data = append(data, encodedProof...)
	return data, nil
}

func encodeProof(proof *types.PoolMembershipProof) ([]byte, error) {
	if proof == nil {
		return nil, errors.Wrap(ErrInvalidInput, "proof is nil")
	}
	tuple := proofTuple{
		MerkleTreeDepth: new(big.Int).SetUint64(proof.MerkleTreeDepth),
		MerkleTreeRoot:  orZero(proof.MerkleTreeRoot),
		Nullifier:       orZero(proof.Nullifier),
		Message:         orZero(proof.Message),
		Scope:           orZero(proof.Scope),
	}
	for i, p := range proof.Points {
		tuple.Points[i] = orZero(p)
	}
	packed, err := proofArgs.Pack(tuple)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	return packed, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// ValidateDataStructure is a pure structural guard over a paymasterData
// blob: exact total length, a well-formed config word and room for the
// pool id. It never returns an error; any problem yields false.
func ValidateDataStructure(data []byte) bool {
	if len(data) != PaymasterDataLength {
		return false
	}
	cfg := new(uint256.Int).SetBytes(data[:ConfigLength])
	if _, _, err := DecodeConfig(cfg); err != nil {
		return false
	}
	return len(data[ConfigLength:]) >= PoolIDLength
}
