package util

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// Truncate cuts s to at most n bytes plus an ellipsis, backing off to the
// nearest rune boundary so a cut inside a multibyte character never produces
// invalid UTF-8.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
