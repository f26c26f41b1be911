package pumpfun

import (
	"fmt"

	"github.com/Ozodimgba/geyser/internal/types"
	"github.com/near/borsh-go"
)

// NamedAccount binds a human-readable name to a position inside a compiled
// instruction's account list.
type NamedAccount struct {
	Name  string
	Index int
}

// CreateAccountLayout lists the accounts worth reporting from a create
// instruction, in output order. Declared as data so that extending the
// report (or covering another instruction type) is a table edit, not logic.
//
// Create instruction account layout:
//
//	#0  - Mint (the newly created token mint)
//	#1  - Mint Authority (program-derived)
//	#2  - Bonding Curve (pool state account)
//	#3  - Bonding Curve Vault (pool token account)
//	#4  - Global config
//	#5  - Metaplex Token Metadata program
//	#6  - Metadata PDA
//	#7  - User wallet
//	#8+ - System / Token / ATA programs, Rent, Event Authority, Program ID
var CreateAccountLayout = []NamedAccount{
	{Name: "mint", Index: 0},
}

// CreateArgs are the borsh-encoded arguments following the discriminator
// in a create instruction.
type CreateArgs struct {
	Name    string
	Symbol  string
	URI     string
	Creator types.Pubkey
}

// DecodeCreateArgs deserializes the create arguments from raw instruction
// data. The caller treats failures as "no metadata", not as a dropped
// event: the account resolution path never depends on the args payload.
func DecodeCreateArgs(data []byte) (*CreateArgs, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("instruction data too short: %d bytes", len(data))
	}
	var args CreateArgs
	if err := borsh.Deserialize(&args, data[8:]); err != nil {
		return nil, fmt.Errorf("failed to decode create args: %w", err)
	}
	return &args, nil
}
