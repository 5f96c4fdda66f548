package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int with decimal-string JSON encoding, used for token
// amounts that may exceed 64 bits.
type BigInt big.Int

func NewBigInt(i int64) *BigInt {
	return (*BigInt)(big.NewInt(i))
}

// MathBigInt converts b to a *big.Int.
func (b *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(b)
}

func (b *BigInt) String() string {
	return b.MathBigInt().String()
}

func (b *BigInt) MarshalText() ([]byte, error) {
	return []byte(b.MathBigInt().String()), nil
}

func (b *BigInt) UnmarshalText(data []byte) error {
	if _, ok := b.MathBigInt().SetString(string(data), 10); !ok {
		return fmt.Errorf("invalid decimal integer: %q", data)
	}
	return nil
}

// MarshalCBOR delegates to the native big.Int bignum encoding; without it
// the wrapper would encode as an empty struct.
func (b *BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(b.MathBigInt())
}

func (b *BigInt) UnmarshalCBOR(data []byte) error {
	return cbor.Unmarshal(data, b.MathBigInt())
}

func (b *BigInt) SetBytes(data []byte) *BigInt {
	return (*BigInt)(b.MathBigInt().SetBytes(data))
}

func (b *BigInt) Bytes() []byte {
	return b.MathBigInt().Bytes()
}
