package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes is a []byte that encodes to JSON as a 0x-prefixed hex string.
// Commitments, nullifiers and curve-point blobs cross the wire in this form.
type HexBytes []byte

func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

// FromHex decodes a hex string, with or without the 0x prefix.
func (b *HexBytes) FromHex(s string) error {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	enc := make([]byte, 0, len(b)*2+4)
	enc = append(enc, '"', '0', 'x')
	enc = hex.AppendEncode(enc, b)
	enc = append(enc, '"')
	return enc, nil
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid JSON string: %q", data)
	}
	return b.FromHex(string(data[1 : len(data)-1]))
}

// Equal reports byte equality. Commitment digests are only ever compared,
// never interpreted.
func (b HexBytes) Equal(other HexBytes) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}
