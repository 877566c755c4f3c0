package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrStaleAction = errors.New("signed action expired")

// VerifyEIP191Signature verifies an EIP-191 personal_sign signature
// Returns the recovered Ethereum address if valid
func VerifyEIP191Signature(message, signature string) (common.Address, error) {
	sigBytes, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature hex: %w", err)
	}

	if len(sigBytes) != 65 {
		return common.Address{}, fmt.Errorf("invalid signature length: expected 65, got %d", len(sigBytes))
	}

	// v can be 0, 1, 27, or 28 - normalize to 0 or 1
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}

	pubKey, err := crypto.SigToPub(ActionHash(message).Bytes(), sigBytes)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// ActionHash is the EIP-191 personal message hash of message
func ActionHash(message string) common.Hash {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	return crypto.Keccak256Hash([]byte(prefixed))
}

// ActionMessage renders the message a provider signs to authorize action,
// e.g. "withdraw_liquidity:1700000000".
func ActionMessage(action string, at time.Time) string {
	return action + ":" + strconv.FormatInt(at.Unix(), 10)
}

// VerifyAction checks that message authorizes action, was signed within maxAge of now
// and returns the signer.
func VerifyAction(action, message, signature string, now time.Time, maxAge time.Duration) (common.Address, error) {
	name, ts, ok := strings.Cut(message, ":")
	if !ok || name != action {
		return common.Address{}, fmt.Errorf("message does not authorize %s", action)
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid message timestamp: %w", err)
	}
	signedAt := time.Unix(unix, 0)
	if now.Sub(signedAt) > maxAge || signedAt.Sub(now) > maxAge {
		return common.Address{}, ErrStaleAction
	}
	return VerifyEIP191Signature(message, signature)
}

// ValidateEVMAddress checks if a string is a valid EVM address
func ValidateEVMAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") {
		return false
	}
	if len(address) != 42 {
		return false
	}
	_, err := hex.DecodeString(address[2:])
	return err == nil
}
