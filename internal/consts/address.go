package consts

import "github.com/Ozodimgba/geyser/internal/types"

// Base58 address constants (readable form, for config and logs).
const (
	// PumpFunProgramStr is the pump.fun bonding-curve program.
	PumpFunProgramStr = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"

	// PumpFunMintAuthorityStr signs every pump.fun token mint, so requiring
	// it alongside the program narrows the stream to create transactions.
	PumpFunMintAuthorityStr = "TSLvdd1pWpHVjahSpsvCXUbgwsL3JAcvokwaKt1eokM"
)

var (
	PumpFunProgram       = types.PubkeyFromBase58(PumpFunProgramStr)
	PumpFunMintAuthority = types.PubkeyFromBase58(PumpFunMintAuthorityStr)
)
