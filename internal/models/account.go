package models

import "time"

// Account is a ledger row: an address seen by the lookup endpoint and the
// balance observed the first time it was seen.
type Account struct {
	ID        string    `json:"id" db:"id"`
	Address   string    `json:"address" db:"address"`
	Balance   string    `json:"balance" db:"balance"` // numeric(18,8), ETH
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AccountSnapshot is the formatted upstream state for one address.
type AccountSnapshot struct {
	Balance     string `json:"balance"`     // ETH
	BlockNumber string `json:"blockNumber"` // as returned upstream
	GasPrice    string `json:"gasPrice"`    // gwei
}

type AccountView struct {
	AccountSnapshot
	Cached bool `json:"cached"`
}
