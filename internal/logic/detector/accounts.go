package detector

import (
	"fmt"

	"github.com/Ozodimgba/geyser/internal/types"
)

// buildAccountKeys assembles the transaction's full account-key table:
// static message.accountKeys followed by the writable and readonly
// addresses loaded through address-table lookups (versioned transactions).
// Instruction account indices address this combined table.
func buildAccountKeys(accountKeys, loadedWritable, loadedReadonly [][]byte) ([]types.Pubkey, error) {
	total := len(accountKeys) + len(loadedWritable) + len(loadedReadonly)
	keys := make([]types.Pubkey, 0, total)

	for _, group := range [][][]byte{accountKeys, loadedWritable, loadedReadonly} {
		for _, raw := range group {
			key, err := types.PubkeyFromBytes(raw)
			if err != nil {
				return nil, fmt.Errorf("account key %d: %w", len(keys), err)
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}
