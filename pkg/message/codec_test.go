package message

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func sampleMessage(metaLen int) *Message {
	meta := make([]byte, metaLen)
	for i := range meta {
		meta[i] = byte(i % 251)
	}
	return &Message{
		Recipient:             AddressToRecipient(common.HexToAddress("0x00000000000000000000000000000000000000aa")),
		Amount:                uint256.NewInt(1_500_000_000_000_000_000),
		Metadata:              meta,
		TransferID:            common.HexToHash("0x1f2e3d4c5b6a79880000000000000000000000000000000000000000000000ff"),
		OriginBlock:           19_000_123,
		InsuranceFundUSD:      uint256.MustFromDecimal("100000000000000000000000"),
		AvailableLiquidityUSD: uint256.MustFromDecimal("50000000000000000000000"),
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec(V3)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	for _, metaLen := range []int{0, 1, 1000} {
		msg := sampleMessage(metaLen)
		payload, err := codec.Encode(msg)
		if err != nil {
			t.Fatalf("Encode(meta=%d): %v", metaLen, err)
		}
		if len(payload) != V3.MinSize()+metaLen {
			t.Fatalf("payload length = %d, want %d", len(payload), V3.MinSize()+metaLen)
		}

		got, err := codec.Decode(payload)
		if err != nil {
			t.Fatalf("Decode(meta=%d): %v", metaLen, err)
		}
		if got.Recipient != msg.Recipient {
			t.Errorf("recipient = %s, want %s", got.Recipient, msg.Recipient)
		}
		if !got.Amount.Eq(msg.Amount) {
			t.Errorf("amount = %s, want %s", got.Amount, msg.Amount)
		}
		if !bytes.Equal(got.Metadata, msg.Metadata) {
			t.Errorf("metadata mismatch for length %d", metaLen)
		}
		if got.TransferID != msg.TransferID {
			t.Errorf("transfer id = %s, want %s", got.TransferID, msg.TransferID)
		}
		if got.OriginBlock != msg.OriginBlock {
			t.Errorf("origin block = %d, want %d", got.OriginBlock, msg.OriginBlock)
		}
		if !got.InsuranceFundUSD.Eq(msg.InsuranceFundUSD) {
			t.Errorf("insurance = %s, want %s", got.InsuranceFundUSD, msg.InsuranceFundUSD)
		}
		if !got.AvailableLiquidityUSD.Eq(msg.AvailableLiquidityUSD) {
			t.Errorf("liquidity = %s, want %s", got.AvailableLiquidityUSD, msg.AvailableLiquidityUSD)
		}
	}
}

func TestCodec_TrailerOffsets(t *testing.T) {
	codec, _ := NewCodec(V2)
	msg := sampleMessage(7)
	msg.OriginBlock = 0

	payload, err := codec.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	l := len(payload)
	if !bytes.Equal(payload[l-96:l-64], msg.TransferID.Bytes()) {
		t.Error("transfer id not at [L-96:L-64)")
	}
	insurance := msg.InsuranceFundUSD.Bytes32()
	if !bytes.Equal(payload[l-64:l-32], insurance[:]) {
		t.Error("insurance not at [L-64:L-32)")
	}
	liquidity := msg.AvailableLiquidityUSD.Bytes32()
	if !bytes.Equal(payload[l-32:], liquidity[:]) {
		t.Error("liquidity not at [L-32:L)")
	}
	if !bytes.Equal(payload[64:l-96], msg.Metadata) {
		t.Error("metadata not at [64:L-96)")
	}
}

func TestCodec_V1Legacy(t *testing.T) {
	codec, _ := NewCodec(V1)
	msg := sampleMessage(3)
	msg.TransferID = common.Hash{}
	msg.OriginBlock = 0

	payload, err := codec.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(payload) != 128+3 {
		t.Fatalf("payload length = %d, want 131", len(payload))
	}
	got, err := codec.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got.Metadata, msg.Metadata) {
		t.Error("metadata mismatch")
	}

	withID := sampleMessage(0)
	withID.OriginBlock = 0
	if _, err := codec.Encode(withID); !errors.Is(err, ErrFieldNotSupported) {
		t.Fatalf("expected ErrFieldNotSupported, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	tests := []struct {
		version Version
		size    int
	}{
		{V1, 127},
		{V2, 159},
		{V3, 191},
		{V3, 0},
		{V2, 96},
	}
	for _, tc := range tests {
		codec, _ := NewCodec(tc.version)
		_, err := codec.Decode(make([]byte, tc.size))
		if !errors.Is(err, ErrMalformedMessage) {
			t.Errorf("%s with %d bytes: expected ErrMalformedMessage, got %v", tc.version, tc.size, err)
		}
	}

	codec, _ := NewCodec(V3)
	msg, err := codec.Decode(make([]byte, V3.MinSize()))
	if err != nil {
		t.Fatalf("minimum size payload should decode: %v", err)
	}
	if len(msg.Metadata) != 0 {
		t.Errorf("metadata length = %d, want 0", len(msg.Metadata))
	}
}

func TestCodec_OriginBlockOverflow(t *testing.T) {
	codec, _ := NewCodec(V3)
	payload := make([]byte, V3.MinSize())
	// high byte of the origin block word
	payload[len(payload)-128] = 0x01
	if _, err := codec.Decode(payload); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("expected ErrMalformedMessage, got %v", err)
	}
}

func TestCodec_RecipientHighBytes(t *testing.T) {
	codec, _ := NewCodec(V3)
	msg := sampleMessage(4)
	msg.Recipient = common.HexToHash("0xdeadbeef000000000000000000000000000000000000000000000000000000c3")
	payload, err := codec.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := codec.Decode(payload); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("expected ErrMalformedMessage, got %v", err)
	}

	msg.Recipient = AddressToRecipient(common.HexToAddress("0x00000000000000000000000000000000000000c3"))
	payload, err = codec.Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := codec.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.RecipientAddress() != common.HexToAddress("0x00000000000000000000000000000000000000c3") {
		t.Errorf("recipient = %s", got.RecipientAddress().Hex())
	}
}

func TestFromBig(t *testing.T) {
	w, err := FromBig(big.NewInt(42))
	if err != nil || w.Uint64() != 42 {
		t.Fatalf("FromBig(42) = %v, %v", w, err)
	}
	if _, err := FromBig(big.NewInt(-1)); !errors.Is(err, ErrValueOverflow) {
		t.Errorf("negative: expected ErrValueOverflow, got %v", err)
	}
	huge := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := FromBig(huge); !errors.Is(err, ErrValueOverflow) {
		t.Errorf("2^256: expected ErrValueOverflow, got %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	for in, want := range map[string]Version{"v1": V1, "V2": V2, "v3": V3, "": V3} {
		got, err := ParseVersion(in)
		if err != nil || got != want {
			t.Errorf("ParseVersion(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseVersion("v9"); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("expected ErrUnsupportedVersion, got %v", err)
	}
}
