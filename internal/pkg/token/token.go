// Package token generates share link tokens.
package token

import (
	"crypto/rand"
	"fmt"
)

// Length of a share token. With a 64-symbol alphabet each character carries
// 6 bits, so a token carries 192 bits.
const Length = 32

// URL-safe alphabet; its size divides 256 so byte&63 is unbiased.
const alphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// Generate returns a random URL-safe string of n characters.
func Generate(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[b&63]
	}
	return string(buf), nil
}

// New returns a share token of Length characters.
func New() (string, error) {
	return Generate(Length)
}
