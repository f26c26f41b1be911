package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Pubkey is a raw 32-byte Solana public key.
type Pubkey [32]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// PubkeyFromBytes copies b into a Pubkey. Returns an error when b is not
// exactly 32 bytes, so truncated keys from a malformed update never pass.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != 32 {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want 32", len(b))
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

// TryPubkeyFromBase58 parses a base58 string into a Pubkey, returning an
// error on bad input (for untrusted paths).
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	return PubkeyFromBytes(data)
}

// PubkeyFromBase58 parses a known-good base58 string, panicking on failure.
// Reserved for package-level address constants.
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}
