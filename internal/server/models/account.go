// Package models defines server-side data models persisted in the database.
package models

import (
	"strconv"
	"time"
)

// JoinDateLayout is the textual form of a join date: UTC, second precision.
const JoinDateLayout = "2006-01-02 15:04:05"

// GameAccountIndex is the index of the single game account created for a
// new battle.net account.
const GameAccountIndex = 1

// UmbrellaAccount is a row of battlenet_accounts: the email-identified
// account that owns game accounts.
type UmbrellaAccount struct {
	ID int64
	// Email is stored upper-cased and is unique.
	Email string
	// PasswordHash is the reversed-order SHA-256 verifier, 64 hex chars.
	PasswordHash string
	JoinDate     time.Time
}

// LegacyAccount is a row of the account table: the per-game login linked to
// an umbrella account.
type LegacyAccount struct {
	ID       int64
	Username string
	// PasswordHash is the SHA-1 verifier, 40 hex chars.
	PasswordHash string
	Email        string
	RegMail      string
	JoinDate     time.Time
	// UmbrellaAccountID references UmbrellaAccount.ID.
	UmbrellaAccountID int64
	// UmbrellaAccountIndex is the position of this login under the umbrella account.
	UmbrellaAccountIndex int
}

// ProvisionedAccount is the pair of rows written by one successful provisioning.
type ProvisionedAccount struct {
	Umbrella *UmbrellaAccount
	Legacy   *LegacyAccount
}

// GameUsername returns the login name the authentication server expects for
// game account index of the umbrella account id, e.g. "12#1".
func GameUsername(umbrellaID int64, index int) string {
	return strconv.FormatInt(umbrellaID, 10) + "#" + strconv.Itoa(index)
}

// NormalizeJoinDate converts t to UTC and drops sub-second precision.
func NormalizeJoinDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// FormatJoinDate renders t as "YYYY-MM-DD HH:MM:SS" in UTC.
func FormatJoinDate(t time.Time) string {
	return NormalizeJoinDate(t).Format(JoinDateLayout)
}
