package chain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const addressLength = 32

// ParseAddress validates an Aptos account address and returns it in the
// long form: 0x followed by 64 lowercase hex digits. Short forms such as
// 0x1 are left-padded.
func ParseAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return "", fmt.Errorf("invalid address %q: missing 0x prefix", s)
	}

	digits := s[2:]
	if digits == "" {
		return "", fmt.Errorf("invalid address %q: empty", s)
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}

	b, err := hexutil.Decode("0x" + digits)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) > addressLength {
		return "", fmt.Errorf("invalid address %q: longer than %d bytes", s, addressLength)
	}

	return hexutil.Encode(common.LeftPadBytes(b, addressLength)), nil
}

// ParseAddresses parses and deduplicates a list of addresses, keeping the
// first occurrence order.
func ParseAddresses(values []string) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		addr, err := ParseAddress(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out, nil
}
