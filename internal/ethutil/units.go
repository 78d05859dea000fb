package ethutil

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	EtherDecimals = 18
	GweiDecimals  = 9
)

// ParseWei reads a non-negative integer in decimal or 0x-hex form, which is
// what the explorer returns for account and proxy actions respectively.
func ParseWei(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	if digits == "" {
		return nil, fmt.Errorf("parse wei %q: empty", s)
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("parse wei %q: not an integer", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("parse wei %q: negative", s)
	}
	return v, nil
}

// FormatUnits renders v / 10^decimals exactly, trimming trailing zeros but
// keeping at least one fractional digit: 0 -> "0.0", 10^18 @18 -> "1.0".
func FormatUnits(v *big.Int, decimals int32) string {
	if v == nil {
		v = new(big.Int)
	}
	s := decimal.NewFromBigInt(v, -decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func FormatEther(wei *big.Int) string { return FormatUnits(wei, EtherDecimals) }

func FormatGwei(wei *big.Int) string { return FormatUnits(wei, GweiDecimals) }
