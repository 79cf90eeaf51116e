/*
Package xor implements the position-incrementing XOR stream cipher used to
obscure the pictures on the Strip Poker disk.

Each byte is XORed with a key that starts at a single byte seed and increments
by one (modulo 256) for every byte processed:

	out[i] = in[i] ^ byte(seed+i)

The transform is its own inverse so the same call both encrypts and decrypts.
*/
package xor

import "crypto/cipher"

type stream struct {
	key byte
}

// NewStream returns a cipher.Stream positioned at the start of a buffer
// ciphered with seed. Successive calls to XORKeyStream continue the key
// sequence.
func NewStream(seed byte) cipher.Stream {
	return &stream{key: seed}
}

func (s *stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("xor: output smaller than input")
	}
	for i, b := range src {
		dst[i] = b ^ s.key
		s.key++
	}
}

// Transform returns a copy of data with the keystream for seed applied.
func Transform(data []byte, seed byte) []byte {
	out := make([]byte, len(data))
	NewStream(seed).XORKeyStream(out, data)
	return out
}
