// Package savegame generates save codes and talks to the save/load callables.
package savegame

import (
	"crypto/rand"
	"fmt"
	"io"
)

// CodeAlphabet is the set of characters a save code is drawn from.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// CodeLength is the number of characters in a save code.
const CodeLength = 8

// rejection threshold: the largest multiple of len(CodeAlphabet) below 256.
const maxUnbiased = 256 - 256%len(CodeAlphabet)

// NewCode draws CodeLength characters uniformly from CodeAlphabet. A nil
// reader uses crypto/rand. Codes are not checked for collisions.
func NewCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	out := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength*2)
	for len(out) < CodeLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, CodeAlphabet[int(b)%len(CodeAlphabet)])
			if len(out) == CodeLength {
				break
			}
		}
	}
	return string(out), nil
}

// ValidCode reports whether s has the shape of a save code.
func ValidCode(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
