package models

import "github.com/baharkarakas/ethscan-backend/internal/etherscan"

// ExplorerTx is an explorer transaction plus its value in ETH.
type ExplorerTx struct {
	etherscan.Tx
	ValueEth string `json:"valueEth"`
}
