package semaphore

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/iden3/go-iden3-crypto/babyjub"
	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/pkg/errors"
)

// privateKeySize is the byte length of an exported private key.
const privateKeySize = 32

// Identity is a Semaphore identity: a baby jubjub private key and the
// public commitment derived from it. The commitment is the value stored
// as a merkle leaf in the pool.
type Identity struct {
	privateKey babyjub.PrivateKey
	publicKey  *babyjub.PublicKey
	commitment *big.Int
}

// NewIdentity imports an identity from its base64 private-key export.
func NewIdentity(export string) (*Identity, error) {
	raw, err := base64.StdEncoding.DecodeString(export)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidIdentity, err.Error())
	}
	if len(raw) != privateKeySize {
		return nil, errors.Wrapf(ErrInvalidIdentity, "private key is %d bytes, want %d", len(raw), privateKeySize)
	}

	var key babyjub.PrivateKey
	copy(key[:], raw)
	pub := key.Public()

	commitment, err := poseidon.Hash([]*big.Int{pub.X, pub.Y})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidIdentity, err.Error())
	}
	return &Identity{privateKey: key, publicKey: pub, commitment: commitment}, nil
}

// Commitment returns the public identity commitment.
func (id *Identity) Commitment() *big.Int {
	return new(big.Int).Set(id.commitment)
}

// PublicKey returns the baby jubjub public key.
func (id *Identity) PublicKey() *babyjub.PublicKey {
	return id.publicKey
}

// PrivateKey returns the raw private key for the proving primitive.
func (id *Identity) PrivateKey() []byte {
	out := make([]byte, privateKeySize)
	copy(out, id.privateKey[:])
	return out
}

// Export returns the base64 private-key export string.
func (id *Identity) Export() string {
	return base64.StdEncoding.EncodeToString(id.privateKey[:])
}

// IdentityEncoding tags how identity material arrived: hex-encoded
// UTF-8 or the literal export string. Both occur in the wild depending
// on which encoder produced the paymaster context.
type IdentityEncoding int

const (
	// EncodingHex means the material was hex bytes of the export string.
	EncodingHex IdentityEncoding = iota
	// EncodingRaw means the material was the export string itself.
	EncodingRaw
)

// DecodedIdentity is the result of DecodeIdentityMaterial.
type DecodedIdentity struct {
	Encoding IdentityEncoding
	Export   string
}

// DecodeIdentityMaterial resolves the two accepted encodings of
// identity material. Hex is tried first; anything that is not valid hex
// is taken as the literal export string. The function is total.
func DecodeIdentityMaterial(material []byte) DecodedIdentity {
	candidate := strings.TrimPrefix(string(material), "0x")
	if raw, err := hex.DecodeString(candidate); err == nil && len(raw) > 0 {
		return DecodedIdentity{Encoding: EncodingHex, Export: string(raw)}
	}
	return DecodedIdentity{Encoding: EncodingRaw, Export: string(material)}
}
