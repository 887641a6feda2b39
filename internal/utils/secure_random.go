package utils

import (
	"crypto/rand"
	"fmt"
)

// inviteAlphabet omits characters that are easy to misread (0/O, 1/I).
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the number of characters in a group invite code.
const InviteCodeLength = 8

// GenerateInviteCode returns a cryptographically random, upper-case alphanumeric code.
func GenerateInviteCode() (string, error) {
	return randomFromAlphabet(InviteCodeLength, inviteAlphabet)
}

func randomFromAlphabet(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	// 256 is a multiple of len(alphabet) so the modulo is unbiased
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b), nil
}
