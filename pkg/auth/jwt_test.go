package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMessageToken_RoundTrip(t *testing.T) {
	signer := NewMessageSigner(testSecret, "insured-bridge", time.Minute)
	validator := NewMessageValidator(testSecret, "insured-bridge", 10)
	payload := []byte("payload")

	token, err := signer.Sign("msg-1", 1, 10, payload)
	require.NoError(t, err)

	origin, claims, err := validator.Validate(token, payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), origin)
	assert.Equal(t, "msg-1", claims.ID)
}

func TestMessageToken_Rejections(t *testing.T) {
	signer := NewMessageSigner(testSecret, "insured-bridge", time.Minute)
	payload := []byte("payload")
	token, err := signer.Sign("msg-1", 1, 10, payload)
	require.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		_, _, err := NewMessageValidator(testSecret, "insured-bridge", 10).Validate(token, []byte("other"))
		assert.ErrorIs(t, err, ErrPayloadMismatch)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := NewMessageValidator("ffffffffffffffffffffffffffffffff", "insured-bridge", 10).Validate(token, payload)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, _, err := NewMessageValidator(testSecret, "someone-else", 10).Validate(token, payload)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other destination", func(t *testing.T) {
		_, _, err := NewMessageValidator(testSecret, "insured-bridge", 5).Validate(token, payload)
		assert.ErrorIs(t, err, ErrUnexpectedAudience)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewMessageSigner(testSecret, "insured-bridge", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		expired, err := old.Sign("msg-2", 1, 10, payload)
		require.NoError(t, err)
		_, _, err = NewMessageValidator(testSecret, "insured-bridge", 10).Validate(expired, payload)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
