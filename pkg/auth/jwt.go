package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken       = errors.New("invalid message token")
	ErrPayloadMismatch    = errors.New("message token does not match payload")
	ErrUnexpectedAudience = errors.New("message token issued for another chain")
)

// MessageClaims bind a dispatched payload to its origin chain. The subject is the
// origin chain id and the audience the destination chain id.
type MessageClaims struct {
	PayloadHash string `json:"payload_hash"`
	jwt.RegisteredClaims
}

// MessageSigner issues HS256 tokens for outbound messages
type MessageSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewMessageSigner creates a signer for tokens valid for ttl
func NewMessageSigner(secret, issuer string, ttl time.Duration) *MessageSigner {
	return &MessageSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign returns a token authenticating payload as sent by origin to destination
func (s *MessageSigner) Sign(messageID string, origin, destination uint64, payload []byte) (string, error) {
	now := s.now()
	claims := MessageClaims{
		PayloadHash: crypto.Keccak256Hash(payload).Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        messageID,
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(origin, 10),
			Audience:  jwt.ClaimStrings{strconv.FormatUint(destination, 10)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign message token: %w", err)
	}
	return token, nil
}

// MessageValidator verifies tokens presented with inbound messages
type MessageValidator struct {
	secret     []byte
	issuer     string
	localChain uint64
}

// NewMessageValidator creates a validator accepting tokens addressed to localChain
func NewMessageValidator(secret, issuer string, localChain uint64) *MessageValidator {
	return &MessageValidator{
		secret:     []byte(secret),
		issuer:     issuer,
		localChain: localChain,
	}
}

// Validate checks the token against payload and returns the authenticated origin chain
func (v *MessageValidator) Validate(tokenString string, payload []byte) (uint64, *MessageClaims, error) {
	claims := &MessageClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, nil, ErrInvalidToken
	}

	audience := strconv.FormatUint(v.localChain, 10)
	addressed := false
	for _, aud := range claims.Audience {
		if aud == audience {
			addressed = true
			break
		}
	}
	if !addressed {
		return 0, nil, ErrUnexpectedAudience
	}

	if claims.PayloadHash != crypto.Keccak256Hash(payload).Hex() {
		return 0, nil, ErrPayloadMismatch
	}

	origin, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: subject %q is not a chain id", ErrInvalidToken, claims.Subject)
	}
	return origin, claims, nil
}
