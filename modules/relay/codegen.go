package relay

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// roomCodeBytes is the entropy behind a room code. Five random bytes give
// ten uppercase hex characters, large enough that live-code collisions are
// treated as negligible rather than checked for.
const roomCodeBytes = 5

// GenerateRoomCode generates a random room code of uppercase hex characters.
func GenerateRoomCode() (string, error) {
	buf := make([]byte, roomCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// IsValidRoomCode checks whether a string has the shape of a generated
// room code.
func IsValidRoomCode(code string) bool {
	if len(code) != roomCodeBytes*2 {
		return false
	}
	for _, c := range code {
		if !isUpperHex(c) {
			return false
		}
	}
	return true
}

func isUpperHex(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}
