package tokenswap

import (
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/iov-one/tokenswap/errors"
)

var (
	// it must have (?s) flags, otherwise it errors when last section contains 0x20 (newline)
	perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)
)

// Condition is a specially formatted array, containing
// information on which extension controls an account.
// It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
//
// Accounts owned by an extension (the swap vault, token contracts) have
// no private key, their address is derived from a condition.
type Condition []byte

// NewCondition builds a condition for the given extension.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes
// and verify it is properly formatted
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInvalidInput, "condition: %X", []byte(c))
	}
	// returns [all, match1, match2, match3]
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address is the last 20 bytes of the keccak256 hash of the condition.
func (c Condition) Address() common.Address {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(c)
	return common.BytesToAddress(h.Sum(nil))
}

// String returns a human readable string.
// We keep the extension and type in ascii and
// hex-encode the binary data
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the Condition is not the proper format
func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.Wrapf(errors.ErrInvalidInput, "condition: %X", []byte(c))
	}
	return nil
}

// ParseAddress decodes a 0x prefixed hex encoded address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(errors.ErrInvalidInput, "address %q", s)
	}
	return common.HexToAddress(s), nil
}

// IsZeroAddress returns true for the "no identity" sentinel.
func IsZeroAddress(a common.Address) bool {
	return a == (common.Address{})
}
