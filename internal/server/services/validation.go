package services

import (
	"strings"
	"unicode/utf8"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/common"
	"github.com/David-Parker/StormCoreAccountsAPI/internal/cryptox"
)

const (
	// MinPasswordLength is the shortest password accepted at signup.
	MinPasswordLength = 6
	// MaxSafeStringLength bounds every string accepted by CheckSafeString.
	MaxSafeStringLength = 50
)

// unsafeChars are rejected in emails and passwords even though every
// statement is parameterized.
const unsafeChars = `'"\`

// CheckSafeString fails with a policy violation when value is longer than
// MaxSafeStringLength or contains a quote or a backslash.
func CheckSafeString(value string) error {
	if utf8.RuneCountInString(value) > MaxSafeStringLength || strings.ContainsAny(value, unsafeChars) {
		return common.PolicyViolation("unsafe characters")
	}
	return nil
}

// ValidateSignup runs the signup checks in order and returns the first
// failure. It never touches storage.
func ValidateSignup(email, password string) error {
	if email == "" {
		return common.InvalidArgument("email")
	}
	if password == "" {
		return common.InvalidArgument("password")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return common.PolicyViolation("password too short")
	}
	if err := CheckSafeString(email); err != nil {
		return err
	}
	if err := CheckSafeString(password); err != nil {
		return err
	}

	// the verifiers are defined over single-byte input only
	if !cryptox.IsASCII(email) {
		return common.InvalidArgument("email contains non-ASCII characters")
	}
	if !cryptox.IsASCII(password) {
		return common.InvalidArgument("password contains non-ASCII characters")
	}
	return nil
}
