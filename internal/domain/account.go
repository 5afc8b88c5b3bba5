package domain

import "time"

// Account is the user-directory record behind authentication.
// It is read by credential verification and token-identity resolution;
// only the account-management flow writes it.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
