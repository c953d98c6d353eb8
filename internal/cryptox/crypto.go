// Package cryptox implements the password verifiers of the legacy game
// authentication protocol: the SHA-1 verifier stored on game accounts and
// the double SHA-256 verifier stored on battle.net accounts.
//
// Both derivations are pure functions over upper-cased, ASCII-only input.
package cryptox

import (
	"crypto/sha1"
	"crypto/sha256"
	"strings"
	"unicode/utf8"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const hexDigits = "0123456789ABCDEF"

// LegacyAccountHash returns the verifier stored on a game account:
// uppercase hex of SHA1(UPPER(identifier) + ":" + UPPER(password)),
// most-significant byte first. The identifier is the game login, e.g. "1#1".
func LegacyAccountHash(identifier, password string) (string, error) {
	if err := checkInput("identifier", identifier); err != nil {
		return "", err
	}
	if err := checkInput("password", password); err != nil {
		return "", err
	}

	sum := sha1.Sum([]byte(Upper(identifier) + ":" + Upper(password)))
	return HexEncode(sum[:], false), nil
}

// UmbrellaAccountHash returns the verifier stored on a battle.net account.
//
// The upper-cased email is hashed with SHA-256, its uppercase hex form is
// joined with the upper-cased password as "HEX:PASSWORD" and hashed again.
// The second digest is rendered with its byte order reversed, which is how
// the authentication server stores and compares it.
func UmbrellaAccountHash(email, password string) (string, error) {
	if err := checkInput("email", email); err != nil {
		return "", err
	}
	if err := checkInput("password", password); err != nil {
		return "", err
	}

	emailDigest := sha256.Sum256([]byte(Upper(email)))
	sum := sha256.Sum256([]byte(HexEncode(emailDigest[:], false) + ":" + Upper(password)))
	return HexEncode(sum[:], true), nil
}

// HexEncode renders b as uppercase hex without a prefix. With reverse set the
// bytes are emitted from last to first; the digits within a byte keep their
// order.
func HexEncode(b []byte, reverse bool) string {
	var sb strings.Builder
	sb.Grow(len(b) * 2)

	for i := range b {
		c := b[i]
		if reverse {
			c = b[len(b)-1-i]
		}
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0f])
	}

	return sb.String()
}

// IsASCII reports whether s only holds characters the wire format can carry.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Upper performs the culture-independent upper-casing both verifiers apply
// to their input. Casers keep state, so each call gets its own.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func checkInput(name, value string) error {
	if value == "" {
		return common.InvalidArgument(name)
	}
	if !IsASCII(value) {
		return common.InvalidArgument(name + " contains non-ASCII characters")
	}
	return nil
}
