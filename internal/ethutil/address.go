package ethutil

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/baharkarakas/ethscan-backend/internal/apperr"
)

// IsAddress accepts 0x-prefixed 20-byte hex addresses. Single-case input is
// taken as-is; mixed case has to carry a valid EIP-55 checksum.
func IsAddress(s string) bool {
	if len(s) != 2+2*common.AddressLength || !strings.HasPrefix(s, "0x") {
		return false
	}
	if !common.IsHexAddress(s) {
		return false
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

// NormalizeAddress validates s and returns its lowercase form.
func NormalizeAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation("address", "required")
	}
	if !IsAddress(s) {
		return "", apperr.Validation("address", "address is not valid")
	}
	return strings.ToLower(s), nil
}
