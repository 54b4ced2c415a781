package script

import "math/big"

// Script numbers are stored on the stack encoded as little endian with
// a sign bit in the most significant bit of the last byte. Zero
// encodes canonically as an empty byte slice, but a "negative zero"
// such as a lone 0x80 byte is also numerically zero and must decode as
// such.
//
// Arithmetic opcodes in this interpreter operate with arbitrary
// precision: operands and results are not clamped to 4 or 8 bytes, and
// only the MaxScriptElementSize limit applies to the encoded result.
// big.Int carries that through without overflow.

// DecodeNum interprets a stack element as a script number. It
// accepts non-minimal encodings, including negative zero.
func DecodeNum(v []byte) *big.Int {
	n := new(big.Int)
	if len(v) == 0 {
		return n
	}

	negative := v[len(v)-1]&0x80 != 0

	// Strip the sign bit and reverse into the big-endian order that
	// big.Int expects.
	magnitude := make([]byte, len(v))
	for i, b := range v {
		magnitude[len(v)-1-i] = b
	}
	magnitude[0] &= 0x7f

	n.SetBytes(magnitude)
	if negative {
		n.Neg(n)
	}
	return n
}

// EncodeNum serializes a number as a little endian byte slice
// with a sign bit. The result is canonical: zero encodes as an empty
// slice, never as negative zero, and no redundant high bytes are
// emitted.
func EncodeNum(n *big.Int) []byte {
	if n.Sign() == 0 {
		return nil
	}

	isNegative := n.Sign() < 0

	// big.Int magnitude is big endian with no leading zero bytes.
	magnitude := n.Bytes()
	result := make([]byte, len(magnitude), len(magnitude)+1)
	for i, b := range magnitude {
		result[len(magnitude)-1-i] = b
	}

	// When the most significant byte already has the high bit set, an
	// additional byte is required to hold the sign. Otherwise the sign
	// bit lives in the existing last byte.
	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// IsTruthy reports whether a stack element is true under Bitcoin's
// boolean interpretation. An element is false if it is empty or if
// every byte is zero, where the most significant bit of the last byte
// is ignored so that negative zero is also false.
func IsTruthy(v []byte) bool {
	for i, b := range v {
		if i == len(v)-1 {
			if b&0x7f != 0 {
				return true
			}
		} else if b != 0 {
			return true
		}
	}
	return false
}
