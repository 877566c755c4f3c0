package message

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnsupportedVersion = errors.New("unsupported message version")
	ErrFieldNotSupported  = errors.New("field not supported by message version")
	ErrValueOverflow      = errors.New("value does not fit in 32 bytes")
)

// Codec encodes and decodes payloads for one channel pair.
type Codec struct {
	version Version
}

// NewCodec returns a codec bound to version.
func NewCodec(version Version) (*Codec, error) {
	if !version.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
	return &Codec{version: version}, nil
}

// Version returns the wire layout of the codec.
func (c *Codec) Version() Version {
	return c.version
}

// Encode packs msg as recipient | amount | metadata | trailer.
func (c *Codec) Encode(msg *Message) ([]byte, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrMalformedMessage)
	}
	if c.version < V2 && msg.TransferID != (common.Hash{}) {
		return nil, fmt.Errorf("%w: transfer id on %s", ErrFieldNotSupported, c.version)
	}
	if c.version < V3 && msg.OriginBlock != 0 {
		return nil, fmt.Errorf("%w: origin block on %s", ErrFieldNotSupported, c.version)
	}

	out := make([]byte, 0, c.version.MinSize()+len(msg.Metadata))
	out = append(out, msg.Recipient.Bytes()...)
	out = appendWord(out, msg.Amount)
	out = append(out, msg.Metadata...)
	if c.version >= V3 {
		out = appendWord(out, uint256.NewInt(msg.OriginBlock))
	}
	if c.version >= V2 {
		out = append(out, msg.TransferID.Bytes()...)
	}
	out = appendWord(out, msg.InsuranceFundUSD)
	out = appendWord(out, msg.AvailableLiquidityUSD)
	return out, nil
}

// Decode unpacks payload. The trailer is read from the end first, then the header,
// and whatever lies between them is metadata.
func (c *Codec) Decode(payload []byte) (*Message, error) {
	if len(payload) < c.version.MinSize() {
		return nil, fmt.Errorf("%w: %d bytes, %s needs at least %d",
			ErrMalformedMessage, len(payload), c.version, c.version.MinSize())
	}

	msg := &Message{}
	end := len(payload)

	msg.AvailableLiquidityUSD = readWord(payload, end-wordSize)
	end -= wordSize
	msg.InsuranceFundUSD = readWord(payload, end-wordSize)
	end -= wordSize

	if c.version >= V2 {
		msg.TransferID = common.BytesToHash(payload[end-wordSize : end])
		end -= wordSize
	}
	if c.version >= V3 {
		block := readWord(payload, end-wordSize)
		if !block.IsUint64() {
			return nil, fmt.Errorf("%w: origin block overflows uint64", ErrMalformedMessage)
		}
		msg.OriginBlock = block.Uint64()
		end -= wordSize
	}

	msg.Recipient = common.BytesToHash(payload[0:wordSize])
	if !isPaddedAddress(msg.Recipient) {
		return nil, fmt.Errorf("%w: recipient %s is not a left-padded address", ErrMalformedMessage, msg.Recipient.Hex())
	}
	msg.Amount = readWord(payload, wordSize)

	msg.Metadata = make([]byte, end-headerSize)
	copy(msg.Metadata, payload[headerSize:end])
	return msg, nil
}

// FromBig converts a non-negative big integer into a wire word.
func FromBig(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", ErrValueOverflow, v)
	}
	w, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s", ErrValueOverflow, v)
	}
	return w, nil
}

func isPaddedAddress(word common.Hash) bool {
	for _, b := range word[:common.HashLength-common.AddressLength] {
		if b != 0 {
			return false
		}
	}
	return true
}

func appendWord(dst []byte, v *uint256.Int) []byte {
	if v == nil {
		v = new(uint256.Int)
	}
	b := v.Bytes32()
	return append(dst, b[:]...)
}

func readWord(src []byte, offset int) *uint256.Int {
	return new(uint256.Int).SetBytes32(src[offset : offset+wordSize])
}
