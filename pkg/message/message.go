// Package message implements the packed cross-chain payload exchanged between the two
// bridge instances. Besides the transfer itself every payload carries the sender
// chain's insurance fund and available liquidity, both USD valued, so the receiving
// side can cache the counterpart's risk view.
package message

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const wordSize = 32

// headerSize covers recipient and amount.
const headerSize = 2 * wordSize

// Version identifies a wire layout. Both ends of a channel must be configured with
// the same version; the layout is never inferred from the payload length.
type Version uint8

const (
	// V1 is the legacy layout with a 64-byte trailer (insurance, liquidity).
	V1 Version = iota + 1
	// V2 adds the transfer id in front of the trailer (96 bytes).
	V2
	// V3 adds the origin block number in front of the transfer id (128 bytes).
	V3
)

// DefaultVersion is the layout used when nothing is configured.
const DefaultVersion = V3

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	default:
		return fmt.Sprintf("v?(%d)", uint8(v))
	}
}

// Valid reports whether v is a known layout.
func (v Version) Valid() bool {
	return v >= V1 && v <= V3
}

func (v Version) trailerSize() int {
	switch v {
	case V1:
		return 2 * wordSize
	case V2:
		return 3 * wordSize
	case V3:
		return 4 * wordSize
	default:
		return 0
	}
}

// MinSize is the smallest payload that can be decoded with this layout: both
// header words, the full trailer and empty metadata.
func (v Version) MinSize() int {
	return headerSize + v.trailerSize()
}

// ParseVersion parses "v1", "v2" or "v3" (case insensitive).
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return V1, nil
	case "v2", "2":
		return V2, nil
	case "v3", "3", "":
		return V3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
}

// Message is the decoded form of a bridge payload.
type Message struct {
	Recipient             common.Hash
	Amount                *uint256.Int
	Metadata              []byte
	TransferID            common.Hash
	OriginBlock           uint64
	InsuranceFundUSD      *uint256.Int
	AvailableLiquidityUSD *uint256.Int
}

// RecipientAddress interprets the recipient word as a left-padded EVM address.
func (m *Message) RecipientAddress() common.Address {
	return common.BytesToAddress(m.Recipient[12:])
}

// AddressToRecipient left-pads an EVM address into a recipient word.
func AddressToRecipient(addr common.Address) common.Hash {
	return common.BytesToHash(addr.Bytes())
}
