package pumpfun

import "encoding/binary"

// Create is the 8-byte discriminator the pump.fun program places at the
// start of its create-token instruction data.
const Create uint64 = 0x181ec828051c0777

// MatchesCreate reports whether instruction data starts with the create
// discriminator. Short or empty data is a non-match, never a failure.
func MatchesCreate(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	return binary.BigEndian.Uint64(data[:8]) == Create
}
